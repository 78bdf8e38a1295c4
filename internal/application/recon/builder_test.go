package recon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicayacucho/inventario-stock/internal/application/recon"
	"github.com/clinicayacucho/inventario-stock/internal/domain/entity"
	"github.com/clinicayacucho/inventario-stock/internal/domain/source"
)

func catalogoFarmaciaSpec() source.TableSpec {
	return source.TableSpec{
		Name:            "2.1_Productos",
		IDField:         "2.1_ID",
		QtyField:        "2.1_Cantidad",
		GroupField:      "2.5_Grupo",
		NameField:       "2.1_Nombre",
		IngredientField: "2.1_PrincipioActivo",
		LotField:        "2.1_Lote",
		ExpiryField:     "2.1_FechaVencimiento",
	}
}


func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// LoadCatalog
// ──────────────────────────────────────────────────────────────────────────────

func TestLoadCatalog_FiltraGruposNoRastreados(t *testing.T) {
	rows := []source.Row{
		{"2.1_ID": "A", "2.5_Grupo": "FARMACIA", "2.1_Cantidad": 10},
		{"2.1_ID": "B", "2.5_Grupo": "CAFETIN", "2.1_Cantidad": 5},
		{"2.1_ID": "C", "2.5_Grupo": "LIMPIEZA", "2.1_Cantidad": 99},
		{"2.1_ID": "D", "2.5_Grupo": nil, "2.1_Cantidad": 7},
	}
	catalog := recon.LoadCatalog(rows, catalogoFarmaciaSpec())

	require.Len(t, catalog, 2, "solo FARMACIA y CAFETIN entran al motor")
	assert.Equal(t, "A", catalog[0].ID)
	assert.Equal(t, "B", catalog[1].ID)
}

func TestLoadCatalog_NormalizaIDYCantidad(t *testing.T) {
	rows := []source.Row{
		{"2.1_ID": 123.0, "2.5_Grupo": "FARMACIA", "2.1_Cantidad": "x", "2.1_Nombre": "Acetaminofén 500mg"},
	}
	catalog := recon.LoadCatalog(rows, catalogoFarmaciaSpec())

	require.Len(t, catalog, 1)
	assert.Equal(t, "123", catalog[0].ID)
	assert.True(t, catalog[0].BaselineQuantity.IsZero(), "cantidad base malformada se coerce a 0")
	assert.Equal(t, "Acetaminofén 500mg", catalog[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fórmulas de conservación. Los vectores numéricos vienen de casos reales del
// tablero: farmacia 100+20-5-30=85 y almacén 200+50-10-20+5=225.
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildFarmaciaLedger_Formula(t *testing.T) {
	catalog := []entity.CatalogProduct{
		{ID: "A", Group: entity.GroupFarmacia, BaselineQuantity: dec(100)},
	}
	ledger := recon.BuildFarmaciaLedger(catalog, recon.FarmaciaMovements{
		Ventas:       map[string]decimal.Decimal{"A": dec(30)},
		Entradas:     map[string]decimal.Decimal{"A": dec(20)},
		Devoluciones: map[string]decimal.Decimal{"A": dec(5)},
	})

	require.Len(t, ledger.Entries, 1)
	assert.Equal(t, entity.LocationFarmacia, ledger.Location)
	assert.True(t, dec(85).Equal(ledger.Entries[0].ComputedStock),
		"100 + 20 - 5 - 30 = 85")
}

func TestBuildAlmacenLedger_Formula(t *testing.T) {
	catalog := []entity.CatalogProduct{
		{ID: "A", Group: entity.GroupFarmacia, BaselineQuantity: dec(200)},
	}
	ledger := recon.BuildAlmacenLedger(catalog, recon.AlmacenMovements{
		Compras:      map[string]decimal.Decimal{"A": dec(50)},
		Mermas:       map[string]decimal.Decimal{"A": dec(10)},
		Entradas:     map[string]decimal.Decimal{"A": dec(20)},
		Devoluciones: map[string]decimal.Decimal{"A": dec(5)},
	})

	require.Len(t, ledger.Entries, 1)
	assert.True(t, dec(225).Equal(ledger.Entries[0].ComputedStock),
		"200 + 50 - 10 - 20 + 5 = 225")
}

// Ausencia es cero: un producto sin filas en ningún log conserva su base.
func TestBuildLedger_SinMovimientosConservaBase(t *testing.T) {
	catalog := []entity.CatalogProduct{
		{ID: "Z", Group: entity.GroupCafetin, BaselineQuantity: dec(40)},
	}

	farmacia := recon.BuildFarmaciaLedger(catalog, recon.FarmaciaMovements{})
	almacen := recon.BuildAlmacenLedger(catalog, recon.AlmacenMovements{})

	require.Len(t, farmacia.Entries, 1)
	require.Len(t, almacen.Entries, 1)
	assert.True(t, dec(40).Equal(farmacia.Entries[0].ComputedStock))
	assert.True(t, dec(40).Equal(almacen.Entries[0].ComputedStock))
}

// El stock negativo es señal de inconsistencia aguas arriba: se preserva tal
// cual, nunca se recorta a cero.
func TestBuildFarmaciaLedger_NegativoNoSeRecorta(t *testing.T) {
	catalog := []entity.CatalogProduct{
		{ID: "A", Group: entity.GroupFarmacia, BaselineQuantity: dec(10)},
	}
	ledger := recon.BuildFarmaciaLedger(catalog, recon.FarmaciaMovements{
		Ventas: map[string]decimal.Decimal{"A": dec(25)},
	})

	require.Len(t, ledger.Entries, 1)
	assert.True(t, dec(-15).Equal(ledger.Entries[0].ComputedStock),
		"10 - 25 = -15 debe quedar visible")
}

// Propiedad de conservación: los flujos de transferencia (entradas y
// devoluciones) se cancelan a nivel de sistema. Sumar los deltas de ambos
// ledgers atribuibles solo a transferencias debe dar cero.
func TestTransferencias_ConservacionEntreUbicaciones(t *testing.T) {
	farmaciaCat := []entity.CatalogProduct{
		{ID: "A", Group: entity.GroupFarmacia, BaselineQuantity: dec(100)},
	}
	almacenCat := []entity.CatalogProduct{
		{ID: "A", Group: entity.GroupFarmacia, BaselineQuantity: dec(300)},
	}
	entradas := map[string]decimal.Decimal{"A": dec(20)}
	devoluciones := map[string]decimal.Decimal{"A": dec(5)}

	farmacia := recon.BuildFarmaciaLedger(farmaciaCat, recon.FarmaciaMovements{
		Entradas:     entradas,
		Devoluciones: devoluciones,
	})
	almacen := recon.BuildAlmacenLedger(almacenCat, recon.AlmacenMovements{
		Entradas:     entradas,
		Devoluciones: devoluciones,
	})

	deltaFarmacia := farmacia.Entries[0].ComputedStock.Sub(dec(100)) // +15
	deltaAlmacen := almacen.Entries[0].ComputedStock.Sub(dec(300))   // -15
	assert.True(t, deltaFarmacia.Add(deltaAlmacen).IsZero(),
		"una transferencia no crea ni destruye unidades en el sistema")
}
