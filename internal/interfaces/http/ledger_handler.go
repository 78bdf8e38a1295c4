package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicayacucho/inventario-stock/internal/application/dto"
	"github.com/clinicayacucho/inventario-stock/internal/application/ledgerview"
	"github.com/clinicayacucho/inventario-stock/internal/application/recon"
	"github.com/clinicayacucho/inventario-stock/internal/domain"
	"github.com/clinicayacucho/inventario-stock/internal/domain/entity"
)

// LedgerHandler sirve los ledgers conciliados de farmacia y almacén.
type LedgerHandler struct {
	engine *recon.Engine
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(engine *recon.Engine) *LedgerHandler {
	return &LedgerHandler{engine: engine}
}

// GetLedger godoc
// @Summary      Ledger conciliado de una ubicación
// @Description  Existencias reales por producto tras aplicar la fórmula de
//
//	conservación. Sirve el snapshot cacheado mientras siga vigente.
//
// @Tags         ledgers
// @Security     Bearer
// @Produce      json
// @Param        location      path   string  true   "farmacia | almacen"
// @Param        search        query  string  false  "Buscar por nombre o principio activo (insensible a acentos)"
// @Param        in_stock_only query  bool    false  "Solo productos con stock > 0"
// @Param        expiry_months query  int     false  "Ventana de alerta de vencimiento en meses (0 = sin filtro)"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledgers/{location} [get]
func (h *LedgerHandler) GetLedger(c *fiber.Ctx) error {
	snap, err := h.engine.Reconcile(c.Context())
	if err != nil {
		return reconcileError(c, err)
	}
	ledger, ok := pickLedger(snap, c.Params("location"))
	if !ok {
		return unknownLocation(c)
	}
	if ledger.Unavailable {
		return ledgerUnavailable(c)
	}

	filter := ledgerview.Filter{
		Search:       c.Query("search"),
		InStockOnly:  c.QueryBool("in_stock_only"),
		ExpiryMonths: c.QueryInt("expiry_months"),
	}
	entries, metrics := ledgerview.Apply(*ledger, filter, time.Now())

	return c.JSON(dto.LedgerResponse{
		Location:    ledger.Location,
		RunID:       snap.RunID,
		RefreshedAt: snap.RefreshedAt,
		Stale:       h.engine.IsStale(snap),
		Warnings:    snap.Warnings,
		Metrics:     metrics,
		Total:       len(entries),
		Entries:     dto.ToLedgerEntries(entries),
	})
}

// Refresh godoc
// @Summary      Forzar reconciliación
// @Description  Invalida la caché y recalcula ambos ledgers contra el origen.
// @Tags         ledgers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledgers/refresh [post]
func (h *LedgerHandler) Refresh(c *fiber.Ctx) error {
	snap, err := h.engine.Refresh(c.Context())
	if err != nil {
		return reconcileError(c, err)
	}
	return c.JSON(fiber.Map{
		"run_id":       snap.RunID,
		"refreshed_at": snap.RefreshedAt,
	})
}

// pickLedger selecciona el ledger de la ubicación pedida en el path.
func pickLedger(snap *entity.Snapshot, location string) (*entity.Ledger, bool) {
	switch location {
	case entity.LocationFarmacia:
		return &snap.Farmacia, true
	case entity.LocationAlmacen:
		return &snap.Almacen, true
	}
	return nil, false
}

func unknownLocation(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Code:    "NOT_FOUND",
		Message: "ubicación desconocida: use farmacia o almacen",
	})
}

// ledgerUnavailable responde el estado explícito "no disponible": un catálogo
// base ilegible jamás se muestra como tabla vacía.
func ledgerUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code:    "LEDGER_UNAVAILABLE",
		Message: "el catálogo base de la ubicación no pudo leerse; no hay datos que mostrar",
	})
}

func reconcileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrReconciliationFailed) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "RECONCILIATION_FAILED",
			Message: "ningún catálogo base está disponible; los datos están ausentes, no en cero",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
