package recon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clinicayacucho/inventario-stock/internal/application/recon"
)

func TestNormalizeID_RepresentacionEstable(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want string
	}{
		{"string simple", "MED-001", "MED-001"},
		{"string con espacios", "  MED-001  ", "MED-001"},
		{"entero", 123, "123"},
		{"int64", int64(123), "123"},
		{"flotante entero", 123.0, "123"},
		{"flotante con decimales", 12.5, "12.5"},
		{"decimal", decimal.NewFromInt(77), "77"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, recon.NormalizeID(tc.raw))
		})
	}
}

// El mismo producto puede venir como celda numérica en una hoja y como texto
// en otra; ambas representaciones deben unirse bajo la misma clave.
func TestNormalizeID_EnteroYFlotanteCoinciden(t *testing.T) {
	assert.Equal(t, recon.NormalizeID(123), recon.NormalizeID(123.0),
		"123 y 123.0 deben producir la misma clave canónica")
}

func TestNormalizeID_AusenteVaAlCentinela(t *testing.T) {
	assert.Equal(t, recon.MissingID, recon.NormalizeID(nil))
	assert.Equal(t, recon.MissingID, recon.NormalizeID(""))
	assert.Equal(t, recon.MissingID, recon.NormalizeID("   "))
}

func TestCoerceQuantity_ValoresValidos(t *testing.T) {
	assert.True(t, decimal.NewFromInt(10).Equal(recon.CoerceQuantity(10)))
	assert.True(t, decimal.NewFromFloat(2.5).Equal(recon.CoerceQuantity(2.5)))
	assert.True(t, decimal.NewFromInt(7).Equal(recon.CoerceQuantity("7")))
	assert.True(t, decimal.NewFromFloat(1.25).Equal(recon.CoerceQuantity("1.25")))
}

// Cantidades malformadas se coercen a 0, nunca a error: una fila sucia no
// aborta la conciliación.
func TestCoerceQuantity_MalformadaEsCero(t *testing.T) {
	for _, raw := range []any{nil, "", "   ", "abc", "12abc", true, []string{"x"}} {
		assert.True(t, recon.CoerceQuantity(raw).IsZero(),
			"valor %v debe coercerse a 0", raw)
	}
}
