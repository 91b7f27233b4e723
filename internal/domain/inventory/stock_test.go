package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/inventory"
)

func TestNextQuantity(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		kind    entity.MovementKind
		qty     int64
		want    int64
		wantErr error
	}{
		{"entrada suma", 5, entity.MovementIn, 3, 8, nil},
		{"salida resta", 5, entity.MovementOut, 3, 2, nil},
		{"salida exacta deja cero", 5, entity.MovementOut, 5, 0, nil},
		{"salida mayor al stock", 5, entity.MovementOut, 6, 5, domain.ErrInsufficientStock},
		{"cantidad cero", 5, entity.MovementIn, 0, 5, domain.ErrInvalidInput},
		{"cantidad negativa", 5, entity.MovementOut, -1, 5, domain.ErrInvalidInput},
		{"tipo desconocido", 5, entity.MovementKind("AJUSTE"), 1, 5, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.NextQuantity(tt.current, tt.kind, tt.qty)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShare(t *testing.T) {
	assert.Equal(t, "33.33", inventory.Share(1, 3).StringFixed(2))
	assert.Equal(t, "100.00", inventory.Share(7, 7).StringFixed(2))
	assert.True(t, inventory.Share(5, 0).IsZero())
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "TORNILLO 3/8", inventory.NormalizeText("  tornillo 3/8 "))
	assert.Equal(t, "CAÑO GALVANIZADO", inventory.NormalizeText("caño galvanizado"))
	assert.Equal(t, "", inventory.NormalizeText("   "))
	assert.Equal(t, "nota libre", inventory.NormalizeNote(" nota libre "))
}
