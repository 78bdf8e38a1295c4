package entity

import "github.com/shopspring/decimal"

// Grupos de producto rastreados por el sistema. Solo FARMACIA y CAFETIN
// entran al motor de conciliación; cualquier otro grupo se descarta al
// cargar el catálogo, antes de agregar movimientos.
const (
	GroupFarmacia = "FARMACIA"
	GroupCafetin  = "CAFETIN"
)

// TrackedGroup indica si el grupo pertenece a los dos rastreados.
func TrackedGroup(group string) bool {
	return group == GroupFarmacia || group == GroupCafetin
}

// CatalogProduct representa un producto del catálogo maestro de una ubicación
// (farmacia o almacén): identificador ya normalizado, grupo y la cantidad
// base registrada antes de aplicar movimientos. Los atributos descriptivos
// son opacos para el motor; se copian tal cual al ledger.
type CatalogProduct struct {
	ID               string // normalizado, único dentro de su catálogo
	Group            string // FARMACIA | CAFETIN
	BaselineQuantity decimal.Decimal
	Name             string
	ActiveIngredient string // principio activo, solo catálogo de farmacia
	Lot              string
	ExpirationDate   string // texto tal como viene de la hoja (dd/mm/aaaa)
}
