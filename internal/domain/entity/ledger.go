package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ubicaciones con ledger propio.
const (
	LocationFarmacia = "farmacia"
	LocationAlmacen  = "almacen"
)

// LedgerEntry es una fila del ledger conciliado: un producto del catálogo
// con su stock real calculado por la fórmula de conservación de su ubicación.
// Stock negativo se conserva tal cual: es señal de inconsistencia aguas
// arriba y debe ser visible para que alguien la investigue.
type LedgerEntry struct {
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	ActiveIngredient string          `json:"active_ingredient,omitempty"`
	Lot              string          `json:"lot,omitempty"`
	ExpirationDate   string          `json:"expiration_date,omitempty"`
	Baseline         decimal.Decimal `json:"baseline"`
	ComputedStock    decimal.Decimal `json:"computed_stock"`
}

// Ledger es la tabla conciliada de una ubicación. Se crea fresco en cada
// corrida y se reemplaza completo en la siguiente; nunca se actualiza en sitio.
type Ledger struct {
	Location string        `json:"location"`
	Entries  []LedgerEntry `json:"entries"`

	// Unavailable indica que el catálogo base de la ubicación no pudo
	// leerse. Es un estado explícito: una tabla vacía se confundiría con
	// "no hay stock en ninguna parte".
	Unavailable bool `json:"unavailable,omitempty"`
}

// Snapshot es el resultado completo de una corrida de conciliación. Los
// consumidores reciben siempre el mismo snapshot de solo lectura hasta que
// la caché expira o alguien fuerza un refresco.
type Snapshot struct {
	RunID       string    `json:"run_id"`
	Farmacia    Ledger    `json:"farmacia"`
	Almacen     Ledger    `json:"almacen"`
	Warnings    []string  `json:"warnings,omitempty"` // tablas degradadas en esta corrida
	RefreshedAt time.Time `json:"refreshed_at"`
}

// Stale indica si el snapshot superó el TTL de caché en el instante dado.
func (s *Snapshot) Stale(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.RefreshedAt) > ttl
}

// TotalStock suma el stock calculado de todas las entradas del ledger.
func (l Ledger) TotalStock() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.Entries {
		total = total.Add(e.ComputedStock)
	}
	return total
}
