package repository

import (
	"context"
	"time"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
)

// ReportRepository consultas agregadas de solo lectura.
type ReportRepository interface {
	Summary(ctx context.Context) (*entity.StockSummary, error)
	// Activity suma entradas y salidas por producto con movimientos desde since (inclusivo).
	Activity(ctx context.Context, since time.Time) ([]*entity.ProductActivity, error)
}
