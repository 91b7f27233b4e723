package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
)

func TestMovementKind(t *testing.T) {
	assert.True(t, entity.MovementIn.Valid())
	assert.True(t, entity.MovementOut.Valid())
	assert.False(t, entity.MovementKind("in").Valid())
	assert.False(t, entity.MovementKind("").Valid())

	in := &entity.Movement{Kind: entity.MovementIn, Quantity: 5}
	out := &entity.Movement{Kind: entity.MovementOut, Quantity: 3}
	assert.Equal(t, int64(5), in.Signed())
	assert.Equal(t, int64(-3), out.Signed())
}

func TestProductFields_Empty(t *testing.T) {
	assert.True(t, entity.ProductFields{}.Empty())
	cat := "HERRAMIENTAS"
	assert.False(t, entity.ProductFields{Category: &cat}.Empty())
}
