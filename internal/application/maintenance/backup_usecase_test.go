package maintenance_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/maintenance"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
)

type fakeStore struct {
	path string
	dest string
	err  error
}

func (s *fakeStore) Backup(_ context.Context, dest string) error {
	s.dest = dest
	return s.err
}

func (s *fakeStore) Path() string { return s.path }

var fixedNow = func() time.Time { return time.Date(2026, time.March, 10, 15, 4, 5, 0, time.UTC) }

func TestDefaultBackupName(t *testing.T) {
	assert.Equal(t, "backup_deposito_20260310_150405.db", maintenance.DefaultBackupName(fixedNow()))
}

func TestBackup_RutaPorDefecto(t *testing.T) {
	store := &fakeStore{path: filepath.Join("data", "deposito.db")}
	uc := maintenance.NewBackupUseCase(store, fixedNow)

	got, err := uc.Backup(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "backup_deposito_20260310_150405.db"), got)
	assert.Equal(t, got, store.dest)
}

func TestBackup_Directorio(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{path: "deposito.db"}
	uc := maintenance.NewBackupUseCase(store, fixedNow)

	got, err := uc.Backup(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backup_deposito_20260310_150405.db"), got)
}

func TestBackup_Errores(t *testing.T) {
	// Caso 1: almacén sin archivo y sin ruta.
	uc := maintenance.NewBackupUseCase(&fakeStore{}, fixedNow)
	_, err := uc.Backup(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Caso 2: el error del almacén se propaga.
	uc = maintenance.NewBackupUseCase(&fakeStore{path: "x.db", err: domain.ErrInvalidInput}, fixedNow)
	_, err = uc.Backup(context.Background(), "otro.db")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestBackupBeside(t *testing.T) {
	store := &fakeStore{path: filepath.Join("data", "deposito.db")}
	uc := maintenance.NewBackupUseCase(store, fixedNow)

	// Caso 1: sin nombre usa el nombre fechado junto a la base.
	got, err := uc.BackupBeside(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "backup_deposito_20260310_150405.db"), got)

	// Caso 2: nombre simple, también junto a la base.
	got, err = uc.BackupBeside(context.Background(), " copia.db ")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "copia.db"), got)
	assert.Equal(t, got, store.dest)
}

func TestBackupBeside_RutasRechazadas(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"absoluta", filepath.Join(string(filepath.Separator), "tmp", "x.db")},
		{"sube de directorio", filepath.Join("..", "x.db")},
		{"subdirectorio", filepath.Join("respaldos", "x.db")},
		{"barra invertida", `respaldos\x.db`},
		{"punto", "."},
		{"dos puntos", ".."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{path: filepath.Join("data", "deposito.db")}
			uc := maintenance.NewBackupUseCase(store, fixedNow)
			_, err := uc.BackupBeside(context.Background(), tt.in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
			assert.Empty(t, store.dest, "no debe llegar al almacén")
		})
	}

	// Almacén sin archivo.
	uc := maintenance.NewBackupUseCase(&fakeStore{}, fixedNow)
	_, err := uc.BackupBeside(context.Background(), "copia.db")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
