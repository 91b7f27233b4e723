package maintenance

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
)

// Snapshotter copia consistente del almacén a un archivo nuevo.
type Snapshotter interface {
	Backup(ctx context.Context, dest string) error
	// Path ruta del archivo de la base ("" si no es un archivo).
	Path() string
}

// DefaultBackupName nombre por defecto del respaldo: backup_deposito_<YYYYMMDD_HHMMSS>.db.
func DefaultBackupName(now time.Time) string {
	return "backup_deposito_" + now.Format("20060102_150405") + ".db"
}

// BackupUseCase respaldo del almacén completo.
type BackupUseCase struct {
	store Snapshotter
	now   func() time.Time
}

// NewBackupUseCase construye el caso de uso. now nil = time.Now.
func NewBackupUseCase(store Snapshotter, now func() time.Time) *BackupUseCase {
	if now == nil {
		now = time.Now
	}
	return &BackupUseCase{store: store, now: now}
}

// Backup escribe el respaldo en dest y devuelve la ruta usada.
// dest vacío = DefaultBackupName junto al archivo de la base; si dest es un directorio existente,
// se usa el nombre por defecto dentro de él. Nunca sobrescribe un archivo existente.
func (uc *BackupUseCase) Backup(ctx context.Context, dest string) (string, error) {
	dest = strings.TrimSpace(dest)
	name := DefaultBackupName(uc.now())
	switch {
	case dest == "":
		base := uc.store.Path()
		if base == "" {
			return "", fmt.Errorf("%w: el almacén no es un archivo; indique la ruta del respaldo", domain.ErrInvalidInput)
		}
		dest = filepath.Join(filepath.Dir(base), name)
	case isDir(dest):
		dest = filepath.Join(dest, name)
	}
	if err := uc.store.Backup(ctx, dest); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	return dest, nil
}

// BackupBeside respaldo siempre en el directorio de la base. name vacío = DefaultBackupName;
// si no, debe ser un nombre de archivo simple, sin separadores ni componentes "." o "..".
// Es la variante expuesta por HTTP: el cliente no elige directorios.
func (uc *BackupUseCase) BackupBeside(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	base := uc.store.Path()
	if base == "" {
		return "", fmt.Errorf("%w: el almacén no es un archivo", domain.ErrInvalidInput)
	}
	if name == "" {
		name = DefaultBackupName(uc.now())
	} else if !isBareFileName(name) {
		return "", fmt.Errorf("%w: %q debe ser un nombre de archivo sin directorios", domain.ErrInvalidInput, name)
	}
	dest := filepath.Join(filepath.Dir(base), name)
	if err := uc.store.Backup(ctx, dest); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	return dest, nil
}

func isBareFileName(name string) bool {
	if name == "." || name == ".." || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
