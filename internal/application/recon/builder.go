package recon

import (
	"github.com/shopspring/decimal"

	"github.com/clinicayacucho/inventario-stock/internal/domain/entity"
	"github.com/clinicayacucho/inventario-stock/internal/domain/source"
)

// LoadCatalog convierte las filas crudas de un catálogo base en productos
// tipados, normalizando el ID y coerciendo la cantidad base una sola vez.
// Filas cuyo grupo no sea FARMACIA ni CAFETIN se descartan aquí, antes de
// que corra cualquier agregación o join.
func LoadCatalog(rows []source.Row, spec source.TableSpec) []entity.CatalogProduct {
	catalog := make([]entity.CatalogProduct, 0, len(rows))
	for _, row := range rows {
		group := normalizeField(row[spec.GroupField])
		if !entity.TrackedGroup(group) {
			continue
		}
		p := entity.CatalogProduct{
			ID:               NormalizeID(row[spec.IDField]),
			Group:            group,
			BaselineQuantity: CoerceQuantity(row[spec.QtyField]),
			Name:             normalizeField(row[spec.NameField]),
			Lot:              normalizeField(row[spec.LotField]),
			ExpirationDate:   normalizeField(row[spec.ExpiryField]),
		}
		if spec.IngredientField != "" {
			p.ActiveIngredient = normalizeField(row[spec.IngredientField])
		}
		catalog = append(catalog, p)
	}
	return catalog
}

// FarmaciaMovements agrupa los términos agregados de la fórmula de farmacia.
// Entradas y Devoluciones son los flujos de transferencia compartidos con el
// ledger de almacén; aquí se leen con el signo del piso de farmacia.
type FarmaciaMovements struct {
	Ventas       map[string]decimal.Decimal
	Entradas     map[string]decimal.Decimal // bajadas desde almacén
	Devoluciones map[string]decimal.Decimal // subidas al almacén
}

// AlmacenMovements agrupa los términos agregados de la fórmula de almacén.
type AlmacenMovements struct {
	Compras      map[string]decimal.Decimal
	Mermas       map[string]decimal.Decimal
	Entradas     map[string]decimal.Decimal // bajadas a farmacia (restan aquí)
	Devoluciones map[string]decimal.Decimal // subidas desde farmacia (suman aquí)
}

// BuildFarmaciaLedger evalúa la fórmula de conservación de farmacia para cada
// producto del catálogo filtrado:
//
//	stock = base + entradas - devoluciones - ventas
//
// Semántica de left join: un producto sin filas en algún log recibe 0 para
// ese término (ausencia de actividad, no error). El resultado preserva el
// orden del catálogo, lo que hace la corrida determinista.
func BuildFarmaciaLedger(catalog []entity.CatalogProduct, mov FarmaciaMovements) entity.Ledger {
	entries := make([]entity.LedgerEntry, 0, len(catalog))
	for _, p := range catalog {
		stock := p.BaselineQuantity.
			Add(term(mov.Entradas, p.ID)).
			Sub(term(mov.Devoluciones, p.ID)).
			Sub(term(mov.Ventas, p.ID))
		entries = append(entries, newEntry(p, stock))
	}
	return entity.Ledger{Location: entity.LocationFarmacia, Entries: entries}
}

// BuildAlmacenLedger evalúa la fórmula de conservación del almacén:
//
//	stock = base + compras - mermas - bajadas a farmacia + subidas de farmacia
//
// Reutiliza los mismos mapas agregados de transferencia que el ledger de
// farmacia, con signo opuesto: una transferencia nunca crea ni destruye
// unidades a nivel de sistema.
func BuildAlmacenLedger(catalog []entity.CatalogProduct, mov AlmacenMovements) entity.Ledger {
	entries := make([]entity.LedgerEntry, 0, len(catalog))
	for _, p := range catalog {
		stock := p.BaselineQuantity.
			Add(term(mov.Compras, p.ID)).
			Sub(term(mov.Mermas, p.ID)).
			Sub(term(mov.Entradas, p.ID)).
			Add(term(mov.Devoluciones, p.ID))
		entries = append(entries, newEntry(p, stock))
	}
	return entity.Ledger{Location: entity.LocationAlmacen, Entries: entries}
}

// term devuelve la suma agregada del producto o 0 si no tuvo movimientos.
// El default 0 aplica solo a términos numéricos de movimiento; los campos
// descriptivos nunca se rellenan.
func term(m map[string]decimal.Decimal, id string) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m[id]
}

func newEntry(p entity.CatalogProduct, stock decimal.Decimal) entity.LedgerEntry {
	return entity.LedgerEntry{
		ProductID:        p.ID,
		Name:             p.Name,
		ActiveIngredient: p.ActiveIngredient,
		Lot:              p.Lot,
		ExpirationDate:   p.ExpirationDate,
		Baseline:         p.BaselineQuantity,
		ComputedStock:    stock,
	}
}
