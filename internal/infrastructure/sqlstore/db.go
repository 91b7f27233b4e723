package sqlstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/config"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/logger"
)

// Nombres de driver registrados en database/sql.
const (
	driverSQLite = "sqlite" // modernc.org/sqlite
	driverPgx    = "pgx"    // jackc/pgx/v5/stdlib
)

func init() {
	// sqlx no conoce el nombre "sqlite" de modernc; sus placeholders son '?'.
	sqlx.BindDriver(driverSQLite, sqlx.QUESTION)
}

// Querier abstrae *sqlx.DB y *sqlx.Tx para que los repos funcionen dentro y fuera de transacciones.
// Las consultas se escriben con '?' y se pasan por Rebind para el dialecto del driver.
type Querier interface {
	sqlx.ExtContext
}

// Store posee la conexión al almacén durante toda la vida del proceso.
type Store struct {
	db     *sqlx.DB
	driver string
	path   string
	log    *logger.Logger
}

// Open abre el almacén configurado, crea el esquema si falta y verifica la conexión.
// SQLite usa una sola conexión: un único escritor por proceso.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("sqlstore")

	driver := driverSQLite
	if cfg.Driver == config.DriverPostgres {
		driver = driverPgx
	} else if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de la base: %w", err)
		}
	}
	dsn := cfg.ConnectionString()

	if err := Migrate(ctx, driver, dsn); err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir base: %w", err)
	}
	if driver == driverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(time.Hour)
		db.SetConnMaxIdleTime(30 * time.Minute)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}

	log.Info().Str("driver", driver).Str("path", cfg.Path).Msg("almacén abierto")
	return &Store{db: db, driver: driver, path: cfg.Path, log: log}, nil
}

// DB devuelve el handle para construir repositorios fuera de transacción.
func (s *Store) DB() *sqlx.DB { return s.db }

// IsSQLite indica si el almacén es un archivo SQLite (backup/restore solo aplican ahí).
func (s *Store) IsSQLite() bool { return s.driver == driverSQLite }

// Path ruta del archivo SQLite ("" en postgres).
func (s *Store) Path() string {
	if !s.IsSQLite() {
		return ""
	}
	return s.path
}

// Ping verifica que el almacén responde.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close cierra la conexión.
func (s *Store) Close() error {
	s.log.Debug().Msg("cerrando almacén")
	return s.db.Close()
}
