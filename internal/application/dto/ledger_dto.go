package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinicayacucho/inventario-stock/internal/application/ledgerview"
	"github.com/clinicayacucho/inventario-stock/internal/domain/entity"
)

// LedgerEntryDTO fila del ledger para la vista: entrada conciliada más el
// indicador de stock crítico que el tablero resalta.
type LedgerEntryDTO struct {
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	ActiveIngredient string          `json:"active_ingredient,omitempty"`
	Lot              string          `json:"lot,omitempty"`
	ExpirationDate   string          `json:"expiration_date,omitempty"`
	Baseline         decimal.Decimal `json:"baseline"`
	ComputedStock    decimal.Decimal `json:"computed_stock"`
	Critical         bool            `json:"critical"`
}

// LedgerResponse respuesta de GET /api/ledgers/{farmacia|almacen}.
type LedgerResponse struct {
	Location    string             `json:"location"`
	RunID       string             `json:"run_id"`
	RefreshedAt time.Time          `json:"refreshed_at"`
	Stale       bool               `json:"stale"`
	Warnings    []string           `json:"warnings,omitempty"`
	Metrics     ledgerview.Metrics `json:"metrics"`
	Total       int                `json:"total"`
	Entries     []LedgerEntryDTO   `json:"entries"`
}

// ToLedgerEntries mapea entradas de dominio a la vista, marcando las críticas.
func ToLedgerEntries(entries []entity.LedgerEntry) []LedgerEntryDTO {
	out := make([]LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, LedgerEntryDTO{
			ProductID:        e.ProductID,
			Name:             e.Name,
			ActiveIngredient: e.ActiveIngredient,
			Lot:              e.Lot,
			ExpirationDate:   e.ExpirationDate,
			Baseline:         e.Baseline,
			ComputedStock:    e.ComputedStock,
			Critical:         ledgerview.IsCritical(e),
		})
	}
	return out
}
