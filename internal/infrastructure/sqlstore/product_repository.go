package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, COALESCE(description, '') AS description, COALESCE(category, '') AS category,
	COALESCE(location, '') AS location, quantity, created_at`

// ProductRepo implementación del puerto ProductRepository (usable con DB o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar DB o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y completa su ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	product.CreatedAt = dbTime(product.CreatedAt)
	query := `
		INSERT INTO products (name, description, category, quantity, location, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		product.Name, product.Description, product.Category, product.Quantity, product.Location, product.CreatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: producto rechazado por el almacén", domain.ErrInvalidInput)
		}
		return domain.NewStoreError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, forUpdate(r.q, `SELECT `+productColumns+` FROM products WHERE id = ?`), id)
}

func (r *ProductRepo) get(ctx context.Context, query string, id int64) (*entity.Product, error) {
	var p entity.Product
	if err := sqlx.GetContext(ctx, r.q, &p, r.q.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStoreError("get product", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

// UpdateFields actualiza solo las columnas pedidas. La lista de columnas es fija: nunca quantity.
func (r *ProductRepo) UpdateFields(ctx context.Context, id int64, fields entity.ProductFields) (int64, error) {
	var (
		sets []string
		args []interface{}
	)
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	add("name", fields.Name)
	add("description", fields.Description)
	add("category", fields.Category)
	add("location", fields.Location)
	if len(sets) == 0 {
		return 0, nil
	}
	args = append(args, id)

	query := `UPDATE products SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.q.ExecContext(ctx, r.q.Rebind(query), args...)
	if err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
		}
		return 0, domain.NewStoreError("update product", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.NewStoreError("update product", err)
	}
	return n, nil
}

// AdjustQuantity suma delta (positivo o negativo) al stock. El CHECK del esquema impide quedar en negativo.
func (r *ProductRepo) AdjustQuantity(ctx context.Context, id int64, delta int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE products SET quantity = quantity + ? WHERE id = ?`), delta, id)
	if err != nil {
		if isCheckViolation(err) {
			return 0, domain.ErrInsufficientStock
		}
		return 0, domain.NewStoreError("adjust quantity", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.NewStoreError("adjust quantity", err)
	}
	return n, nil
}

// List lista productos por nombre; category vacía = todos.
func (r *ProductRepo) List(ctx context.Context, category string) ([]*entity.Product, error) {
	if category == "" {
		return r.selectProducts(ctx, "list products", `SELECT `+productColumns+` FROM products ORDER BY name, id`)
	}
	return r.selectProducts(ctx, "list products",
		`SELECT `+productColumns+` FROM products WHERE category = ? ORDER BY name, id`, category)
}

// SearchByName busca por subcadena del nombre (literal: % y _ no son comodines).
func (r *ProductRepo) SearchByName(ctx context.Context, substring string) ([]*entity.Product, error) {
	pattern := "%" + escapeLike(substring) + "%"
	return r.selectProducts(ctx, "search products",
		`SELECT `+productColumns+` FROM products WHERE name LIKE ? ESCAPE '\' ORDER BY name, id`, pattern)
}

// ListLowStock productos con quantity <= threshold, de menor a mayor stock.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold int64) ([]*entity.Product, error) {
	return r.selectProducts(ctx, "list low stock",
		`SELECT `+productColumns+` FROM products WHERE quantity <= ? ORDER BY quantity, name, id`, threshold)
}

// ListInStock productos con existencias, por nombre.
func (r *ProductRepo) ListInStock(ctx context.Context) ([]*entity.Product, error) {
	return r.selectProducts(ctx, "list in stock",
		`SELECT `+productColumns+` FROM products WHERE quantity > 0 ORDER BY name, id`)
}

func (r *ProductRepo) selectProducts(ctx context.Context, op, query string, args ...interface{}) ([]*entity.Product, error) {
	list := []*entity.Product{}
	if err := sqlx.SelectContext(ctx, r.q, &list, r.q.Rebind(query), args...); err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	for _, p := range list {
		p.CreatedAt = p.CreatedAt.UTC()
	}
	return list, nil
}
