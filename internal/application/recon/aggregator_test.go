package recon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicayacucho/inventario-stock/internal/application/recon"
	"github.com/clinicayacucho/inventario-stock/internal/domain/source"
)

func TestAggregateMovements_SumaPorProducto(t *testing.T) {
	rows := []source.Row{
		{"pid": "A", "qty": 10},
		{"pid": "A", "qty": 5.5},
		{"pid": "B", "qty": "3"},
	}
	got := recon.AggregateMovements(rows, "pid", "qty")

	require.Len(t, got, 2)
	assert.True(t, decimal.NewFromFloat(15.5).Equal(got["A"]))
	assert.True(t, decimal.NewFromInt(3).Equal(got["B"]))
}

func TestAggregateMovements_TablaVaciaOMapaAusente(t *testing.T) {
	assert.Empty(t, recon.AggregateMovements(nil, "pid", "qty"))
	assert.Empty(t, recon.AggregateMovements([]source.Row{}, "pid", "qty"))
}

// Una cantidad malformada aporta 0 pero la fila sigue agrupando: el producto
// aparece en el mapa con su suma parcial, sin error.
func TestAggregateMovements_FilaMalformadaAportaCero(t *testing.T) {
	rows := []source.Row{
		{"pid": "A", "qty": "no-numérico"},
		{"pid": "A", "qty": 4},
		{"pid": "C", "qty": nil},
	}
	got := recon.AggregateMovements(rows, "pid", "qty")

	assert.True(t, decimal.NewFromInt(4).Equal(got["A"]))
	qty, ok := got["C"]
	require.True(t, ok, "la fila con cantidad ausente debe seguir agrupando")
	assert.True(t, qty.IsZero())
}

// La suma es conmutativa: el resultado no puede depender del orden de filas.
func TestAggregateMovements_IndependienteDelOrden(t *testing.T) {
	rows := []source.Row{
		{"pid": "A", "qty": 1},
		{"pid": "B", "qty": 2},
		{"pid": "A", "qty": 3},
		{"pid": "B", "qty": 4},
	}
	reversed := make([]source.Row, len(rows))
	for i, r := range rows {
		reversed[len(rows)-1-i] = r
	}

	forward := recon.AggregateMovements(rows, "pid", "qty")
	backward := recon.AggregateMovements(reversed, "pid", "qty")

	require.Len(t, backward, len(forward))
	for id, qty := range forward {
		assert.True(t, qty.Equal(backward[id]), "producto %s debe sumar igual en ambos órdenes", id)
	}
}

// IDs ausentes agrupan bajo el centinela y jamás se unen a un producto real.
func TestAggregateMovements_IDAusenteNoContamina(t *testing.T) {
	rows := []source.Row{
		{"pid": nil, "qty": 100},
		{"pid": "A", "qty": 1},
	}
	got := recon.AggregateMovements(rows, "pid", "qty")

	assert.True(t, decimal.NewFromInt(1).Equal(got["A"]))
	assert.True(t, decimal.NewFromInt(100).Equal(got[recon.MissingID]))
}
