package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate crea el esquema inicial con goose usando una conexión propia que se cierra al terminar.
func Migrate(ctx context.Context, driver, dsn string) error {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("abrir base para migrar: %w", err)
	}
	defer db.Close() //nolint:errcheck

	dialect, dir := goose.DialectSQLite3, "migrations/sqlite"
	if driver == driverPgx {
		dialect, dir = goose.DialectPostgres, "migrations/postgres"
	}
	files, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("migraciones embebidas: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, files)
	if err != nil {
		return fmt.Errorf("crear provider de goose: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}
