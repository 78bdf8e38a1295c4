package recon

import (
	"github.com/shopspring/decimal"

	"github.com/clinicayacucho/inventario-stock/internal/domain/source"
)

// AggregateMovements suma las cantidades de un tipo lógico de movimiento por
// identificador de producto normalizado. Contratos:
//   - Cantidades inválidas o ausentes se coercen a 0; la fila sigue
//     agrupando, no se descarta ni levanta error.
//   - Tabla vacía o ausente → mapa vacío; la fórmula de stock degrada a 0
//     para ese término sin bloquear el resto de la conciliación.
//   - La suma es conmutativa: el resultado no depende del orden de filas.
func AggregateMovements(rows []source.Row, idField, qtyField string) map[string]decimal.Decimal {
	if len(rows) == 0 {
		return map[string]decimal.Decimal{}
	}
	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		id := NormalizeID(row[idField])
		qty := CoerceQuantity(row[qtyField])
		totals[id] = totals[id].Add(qty)
	}
	return totals
}
