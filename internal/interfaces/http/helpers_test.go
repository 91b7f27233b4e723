package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/bootstrap"
	apphttp "github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/interfaces/http"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/config"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "deposito-test"
	testOperator  = "felipe"
	testExpMin    = 60
)

// buildTestApp arma la API completa sobre un SQLite temporal.
func buildTestApp(t *testing.T, auth config.AuthConfig) (*fiber.App, *bootstrap.Container) {
	t.Helper()
	cfg := &config.Config{
		App:    config.AppConfig{Name: "deposito-test"},
		DB:     config.DBConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "deposito.db")},
		Auth:   auth,
		Ledger: config.LedgerConfig{LowStockThreshold: 10},
	}
	c, err := bootstrap.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:           cfg.App.Name,
		Ledger:            c.Ledger,
		Reports:           c.Reports,
		Backup:            c.Backup,
		Store:             c.Store,
		Auth:              cfg.Auth,
		LowStockThreshold: cfg.Ledger.LowStockThreshold,
		Log:               logger.Nop(),
	})
	return app, c
}

// doRequest lanza la petición con body JSON opcional y headers extra (clave, valor, ...).
func doRequest(t *testing.T, app *fiber.App, method, target string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode lee el body JSON de la respuesta.
func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// createProduct registra un producto vía API y devuelve su ID.
func createProduct(t *testing.T, app *fiber.App, name string, qty int64, category string) int64 {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": name, "quantity": qty, "category": category,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[struct {
		ID int64 `json:"id"`
	}](t, resp).ID
}
