package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicayacucho/inventario-stock/internal/application/auth"
	"github.com/clinicayacucho/inventario-stock/internal/application/recon"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	Engine    *recon.Engine
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público): pantalla de acceso del portal
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ledgers conciliados (protegido)
	ledgers := protected.Group("/ledgers")
	ledgerHandler := NewLedgerHandler(deps.Engine)
	exportHandler := NewExportHandler(deps.Engine)
	ledgers.Post("/refresh", ledgerHandler.Refresh)
	ledgers.Get("/:location", ledgerHandler.GetLedger)
	ledgers.Get("/:location/export", exportHandler.Export)
}
