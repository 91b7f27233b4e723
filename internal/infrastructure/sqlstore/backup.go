package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
)

// Backup escribe una copia consistente del archivo SQLite en dest (VACUUM INTO).
// Corre como una sola sentencia sobre la única conexión: ninguna escritura queda a medias en la copia.
func (s *Store) Backup(ctx context.Context, dest string) error {
	if !s.IsSQLite() {
		return fmt.Errorf("%w: el respaldo de archivo solo aplica al almacén SQLite", domain.ErrInvalidInput)
	}
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return fmt.Errorf("%w: ruta de respaldo vacía", domain.ErrInvalidInput)
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%w: %s ya existe", domain.ErrInvalidInput, dest)
	} else if !errors.Is(err, os.ErrNotExist) {
		return domain.NewStoreError("stat backup", err)
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewStoreError("backup dir", err)
		}
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return domain.NewStoreError("vacuum into", err)
	}
	s.log.Info().Str("dest", dest).Msg("respaldo creado")
	return nil
}

// Restore reemplaza el archivo dbPath por el respaldo src.
// Valida que src sea una base del depósito íntegra y hace el reemplazo con archivo temporal + rename.
// Ningún Store debe tener dbPath abierto mientras corre.
func Restore(ctx context.Context, src, dbPath string) error {
	src, dbPath = strings.TrimSpace(src), strings.TrimSpace(dbPath)
	if src == "" || dbPath == "" {
		return fmt.Errorf("%w: rutas de restauración vacías", domain.ErrInvalidInput)
	}
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: respaldo %s", domain.ErrNotFound, src)
		}
		return domain.NewStoreError("stat restore source", err)
	}
	absSrc, _ := filepath.Abs(src)
	absDst, _ := filepath.Abs(dbPath)
	if absSrc == absDst {
		return fmt.Errorf("%w: el respaldo es la misma base", domain.ErrInvalidInput)
	}

	db, err := sqlx.Open(driverSQLite, readOnlyURI(absSrc))
	if err != nil {
		return domain.NewStoreError("open restore source", err)
	}
	defer db.Close() //nolint:errcheck
	db.SetMaxOpenConns(1)

	if err := validateLedgerFile(ctx, db); err != nil {
		return err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewStoreError("restore dir", err)
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.restore-%d", filepath.Base(dbPath), os.Getpid()))
	_ = os.Remove(tmp)
	// VACUUM INTO consolida también lo que el respaldo tenga pendiente en su WAL.
	if _, err := db.ExecContext(ctx, `VACUUM INTO ?`, tmp); err != nil {
		_ = os.Remove(tmp)
		return domain.NewStoreError("copy restore source", err)
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			_ = os.Remove(tmp)
			return domain.NewStoreError("remove "+suffix, err)
		}
	}
	if err := os.Rename(tmp, dbPath); err != nil {
		_ = os.Remove(tmp)
		return domain.NewStoreError("replace database", err)
	}
	return nil
}

// readOnlyURI arma la URI file: de solo lectura con la ruta escapada; "?" o "#" en el nombre
// forman parte del archivo y no de la query.
func readOnlyURI(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro&_pragma=busy_timeout(5000)"}
	return u.String()
}

func validateLedgerFile(ctx context.Context, db *sqlx.DB) error {
	var tables int
	err := db.GetContext(ctx, &tables,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('products', 'movements')`)
	if err != nil {
		return fmt.Errorf("%w: el archivo no es una base SQLite válida (%v)", domain.ErrInvalidInput, err)
	}
	if tables != 2 {
		return fmt.Errorf("%w: el archivo no contiene las tablas del depósito", domain.ErrInvalidInput)
	}
	var check string
	if err := db.GetContext(ctx, &check, `PRAGMA quick_check`); err != nil {
		return domain.NewStoreError("quick_check", err)
	}
	if check != "ok" {
		return fmt.Errorf("%w: respaldo dañado (%s)", domain.ErrInvalidInput, check)
	}
	return nil
}
