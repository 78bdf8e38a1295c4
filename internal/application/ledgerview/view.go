// Package ledgerview aplica los filtros de presentación del tablero sobre un
// ledger ya conciliado: búsqueda por nombre o principio activo, solo stock
// disponible y ventana de vencimiento. No muta el ledger; produce una vista.
package ledgerview

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinicayacucho/inventario-stock/internal/domain/entity"
)

// CriticalThreshold es el umbral de stock crítico del tablero (resaltado en
// rojo en la vista original).
const CriticalThreshold = 5

// Filter parámetros de vista sobre un ledger.
type Filter struct {
	Search       string // por nombre o principio activo, insensible a acentos
	InStockOnly  bool   // solo productos con stock calculado > 0
	ExpiryMonths int    // ventana de alerta de vencimiento; 0 = sin filtro
}

// Metrics métricas de cabecera del tablero, calculadas sobre el ledger
// completo (antes de aplicar los filtros de vista).
type Metrics struct {
	TotalItems    int             `json:"total_items"`
	CriticalItems int             `json:"critical_items"` // stock <= CriticalThreshold
	TotalStock    decimal.Decimal `json:"total_stock"`
}

// Apply filtra las entradas del ledger según f y calcula las métricas del
// ledger completo. El stock negativo pasa el filtro por defecto: es una
// señal de inconsistencia que el operador debe ver, no un dato a suprimir.
func Apply(ledger entity.Ledger, f Filter, now time.Time) ([]entity.LedgerEntry, Metrics) {
	metrics := computeMetrics(ledger)

	needle := foldSearch(f.Search)
	entries := make([]entity.LedgerEntry, 0, len(ledger.Entries))
	for _, e := range ledger.Entries {
		if f.InStockOnly && !e.ComputedStock.GreaterThan(decimal.Zero) {
			continue
		}
		if f.ExpiryMonths > 0 && !expiresWithin(e.ExpirationDate, f.ExpiryMonths, now) {
			continue
		}
		if needle != "" && !matchesSearch(e, needle) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, metrics
}

// IsCritical indica si la entrada está en o bajo el umbral crítico.
func IsCritical(e entity.LedgerEntry) bool {
	return e.ComputedStock.LessThanOrEqual(decimal.NewFromInt(CriticalThreshold))
}

func computeMetrics(ledger entity.Ledger) Metrics {
	m := Metrics{TotalItems: len(ledger.Entries), TotalStock: decimal.Zero}
	for _, e := range ledger.Entries {
		if IsCritical(e) {
			m.CriticalItems++
		}
		m.TotalStock = m.TotalStock.Add(e.ComputedStock)
	}
	return m
}

// expiresWithin replica el filtro de alertas del tablero: solo productos que
// vencen en el futuro y dentro de la ventana (meses × 30 días). Fechas
// ilegibles quedan fuera cuando el filtro está activo.
func expiresWithin(rawDate string, months int, now time.Time) bool {
	expiry, ok := parseExpiry(rawDate)
	if !ok {
		return false
	}
	today := now.Truncate(24 * time.Hour)
	if expiry.Before(today) {
		return false
	}
	window := time.Duration(months) * 30 * 24 * time.Hour
	return !expiry.After(today.Add(window))
}

// parseExpiry interpreta la fecha de vencimiento tal como viene de la hoja,
// con el día primero (convención local) y algunos formatos alternos.
func parseExpiry(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	layouts := []string{"02/01/2006", "2/1/2006", "02-01-2006", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
