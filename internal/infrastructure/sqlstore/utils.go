package sqlstore

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isForeignKeyViolation verifica si el error es una violación de clave foránea
// (23503 en PostgreSQL, SQLITE_CONSTRAINT_FOREIGNKEY en SQLite).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}

// isCheckViolation verifica si el error es una violación de CHECK (23514 / SQLITE_CONSTRAINT_CHECK).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_CHECK
	}
	return false
}

// escapeLike escapa los comodines de LIKE; usar con ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// dbTime normaliza instantes antes de guardarlos: UTC y precisión de microsegundos (la de TIMESTAMPTZ).
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// forUpdate agrega el bloqueo de fila cuando el motor lo soporta; SQLite ya serializa escritores.
func forUpdate(q Querier, query string) string {
	if q.DriverName() == driverPgx {
		return query + " FOR UPDATE"
	}
	return query
}
