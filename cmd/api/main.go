package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/clinicayacucho/inventario-stock/internal/application/auth"
	"github.com/clinicayacucho/inventario-stock/internal/application/recon"
	"github.com/clinicayacucho/inventario-stock/internal/domain/source"
	infrapostgres "github.com/clinicayacucho/inventario-stock/internal/infrastructure/postgres"
	infrasheets "github.com/clinicayacucho/inventario-stock/internal/infrastructure/sheets"
	httpRouter "github.com/clinicayacucho/inventario-stock/internal/interfaces/http"
	"github.com/clinicayacucho/inventario-stock/pkg/config"
	"github.com/clinicayacucho/inventario-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("origen", cfg.Source.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Origen tabular: hoja de Google Sheets o espejo en PostgreSQL.
	var src source.TabularSource
	switch cfg.Source.Driver {
	case "postgres":
		pool, err := infrapostgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		src = infrapostgres.NewTableSource(pool)
	default:
		sheetsSrc, err := infrasheets.New(ctx, infrasheets.Config{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			CredentialsFile: cfg.Sheets.CredentialsFile,
			CredentialsJSON: cfg.Sheets.CredentialsJSON,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Google Sheets")
		}
		src = sheetsSrc
	}

	engine := recon.NewEngine(src, recon.Config{
		Tables:       cfg.Tables,
		CacheTTL:     cfg.Recon.CacheTTL,
		TableTimeout: cfg.Recon.TableTimeout,
	}, log.Zerolog())

	authUC := auth.NewUseCase(auth.Config{
		PasswordHash: cfg.Auth.PasswordHash,
		JWTSecret:    cfg.JWT.Secret,
		ExpMinutes:   cfg.JWT.Expiration,
		Issuer:       cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Clínica API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Engine:    engine,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
