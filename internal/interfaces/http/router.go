package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/inventory"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/maintenance"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/report"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/config"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/logger"
)

// Pinger verifica que el almacén responde.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName           string
	Ledger            *inventory.LedgerUseCase
	Reports           *report.ReportUseCase
	Backup            *maintenance.BackupUseCase
	Store             Pinger
	Auth              config.AuthConfig
	LowStockThreshold int64
	Log               *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if deps.Store != nil {
			if err := deps.Store.Ping(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": deps.AppName})
			}
		}
		return c.JSON(fiber.Map{"status": status, "service": deps.AppName})
	})

	// Con AUTH_SECRET toda /api exige Bearer Token; sin él la API queda abierta.
	var mw []fiber.Handler
	if deps.Auth.Enabled() {
		mw = append(mw, AuthMiddleware(deps.Auth.Secret, deps.Auth.Issuer))
	}
	api := app.Group("/api", mw...)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Ledger)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	invGroup.Post("/movements", inventoryHandler.PostMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Ledger, deps.Reports, deps.LowStockThreshold)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/in-stock", reportHandler.InStock)
	reports.Get("/activity", reportHandler.Activity)
	reports.Get("/:kind/export", reportHandler.Export)

	maint := api.Group("/maintenance")
	maintenanceHandler := NewMaintenanceHandler(deps.Backup)
	maint.Post("/backup", maintenanceHandler.Backup)
}
