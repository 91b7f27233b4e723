package repository

import (
	"context"
	"time"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
)

// MovementQuery filtros conjuntivos para listar movimientos.
// From es inclusivo y To exclusivo (instantes UTC ya calculados por la aplicación).
type MovementQuery struct {
	ProductID int64 // 0 = todos
	From      *time.Time
	To        *time.Time
	Limit     int
}

// MovementRepository puerto de persistencia de movimientos (solo inserción y lectura).
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	// List ordena por occurred_at DESC, id DESC e incluye el nombre del producto.
	List(ctx context.Context, q MovementQuery) ([]*entity.Movement, error)
}
