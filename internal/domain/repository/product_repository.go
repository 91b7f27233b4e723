package repository

import (
	"context"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los textos recibidos ya vienen normalizados por la capa de aplicación.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate igual que GetByID pero bloquea la fila dentro de la transacción (si el motor lo soporta).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// UpdateFields aplica solo los campos no nil. Devuelve las filas afectadas.
	UpdateFields(ctx context.Context, id int64, fields entity.ProductFields) (int64, error)
	// AdjustQuantity suma delta a la cantidad. Devuelve las filas afectadas.
	AdjustQuantity(ctx context.Context, id int64, delta int64) (int64, error)
	// List ordena por nombre; category "" = sin filtro.
	List(ctx context.Context, category string) ([]*entity.Product, error)
	SearchByName(ctx context.Context, substring string) ([]*entity.Product, error)
	// ListLowStock quantity <= threshold, ascendente por cantidad.
	ListLowStock(ctx context.Context, threshold int64) ([]*entity.Product, error)
	// ListInStock quantity > 0, por nombre.
	ListInStock(ctx context.Context) ([]*entity.Product, error)
}
