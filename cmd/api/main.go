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

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/bootstrap"
	httpRouter "github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/interfaces/http"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/config"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	container, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer container.Close()

	if !cfg.Auth.Enabled() {
		log.Warn().Str("addr", cfg.HTTP.Addr()).Msg("AUTH_SECRET vacío: la API no exige token")
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 30,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Depósito API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:           cfg.App.Name,
		Ledger:            container.Ledger,
		Reports:           container.Reports,
		Backup:            container.Backup,
		Store:             container.Store,
		Auth:              cfg.Auth,
		LowStockThreshold: cfg.Ledger.LowStockThreshold,
		Log:               log.Component("http"),
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
