package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo persistencia de movimientos. Solo INSERT y SELECT: el historial es de solo anexado.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar DB o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y completa su ID.
// Un product_id inexistente devuelve ErrNotFound (clave foránea).
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	m.OccurredAt = dbTime(m.OccurredAt)
	query := `
		INSERT INTO movements (product_id, kind, quantity, occurred_at, note)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		m.ProductID, string(m.Kind), m.Quantity, m.OccurredAt, m.Note,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, m.ProductID)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: movimiento rechazado por el almacén", domain.ErrInvalidInput)
		}
		return domain.NewStoreError("insert movement", err)
	}
	return nil
}

// List lista movimientos con el nombre del producto, del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, mq repository.MovementQuery) ([]*entity.Movement, error) {
	var (
		where []string
		args  []interface{}
	)
	if mq.ProductID != 0 {
		where = append(where, "m.product_id = ?")
		args = append(args, mq.ProductID)
	}
	if mq.From != nil {
		where = append(where, "m.occurred_at >= ?")
		args = append(args, dbTime(*mq.From))
	}
	if mq.To != nil {
		where = append(where, "m.occurred_at < ?")
		args = append(args, dbTime(*mq.To))
	}

	query := `
		SELECT m.id, m.product_id, m.kind, m.quantity, m.occurred_at, COALESCE(m.note, '') AS note, p.name AS product_name
		FROM movements m
		JOIN products p ON p.id = m.product_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY m.occurred_at DESC, m.id DESC"
	if mq.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, mq.Limit)
	}

	list := []*entity.Movement{}
	if err := sqlx.SelectContext(ctx, r.q, &list, r.q.Rebind(query), args...); err != nil {
		return nil, domain.NewStoreError("list movements", err)
	}
	for _, m := range list {
		m.OccurredAt = m.OccurredAt.UTC()
	}
	return list, nil
}
