package sqlstore

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados de solo lectura para el resumen y la actividad.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Summary totales globales y por categoría (incluye el grupo sin categoría como "").
func (r *ReportRepo) Summary(ctx context.Context) (*entity.StockSummary, error) {
	var totals struct {
		Products int64 `db:"total_products"`
		Units    int64 `db:"total_units"`
	}
	err := sqlx.GetContext(ctx, r.q, &totals, `
		SELECT COUNT(*) AS total_products, CAST(COALESCE(SUM(quantity), 0) AS BIGINT) AS total_units
		FROM products`)
	if err != nil {
		return nil, domain.NewStoreError("stock summary", err)
	}

	per := []entity.CategoryTotals{}
	err = sqlx.SelectContext(ctx, r.q, &per, `
		SELECT COALESCE(category, '') AS category,
		       COUNT(*) AS product_count,
		       CAST(COALESCE(SUM(quantity), 0) AS BIGINT) AS unit_count
		FROM products
		GROUP BY COALESCE(category, '')
		ORDER BY COALESCE(category, '')`)
	if err != nil {
		return nil, domain.NewStoreError("stock summary by category", err)
	}

	return &entity.StockSummary{
		TotalProducts: totals.Products,
		TotalUnits:    totals.Units,
		PerCategory:   per,
	}, nil
}

// Activity unidades que entraron y salieron por producto desde since, con el stock actual.
// Solo aparecen productos con al menos un movimiento en el período.
func (r *ReportRepo) Activity(ctx context.Context, since time.Time) ([]*entity.ProductActivity, error) {
	query := `
		SELECT p.id AS product_id, p.name, COALESCE(p.category, '') AS category,
		       CAST(COALESCE(SUM(CASE WHEN m.kind = 'IN' THEN m.quantity ELSE 0 END), 0) AS BIGINT) AS total_in,
		       CAST(COALESCE(SUM(CASE WHEN m.kind = 'OUT' THEN m.quantity ELSE 0 END), 0) AS BIGINT) AS total_out,
		       p.quantity
		FROM products p
		JOIN movements m ON m.product_id = p.id
		WHERE m.occurred_at >= ?
		GROUP BY p.id, p.name, p.category, p.quantity
		ORDER BY p.name, p.id`
	list := []*entity.ProductActivity{}
	if err := sqlx.SelectContext(ctx, r.q, &list, r.q.Rebind(query), dbTime(since)); err != nil {
		return nil, domain.NewStoreError("product activity", err)
	}
	return list, nil
}
