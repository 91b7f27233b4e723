package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
)

// NextQuantity calcula la cantidad resultante de aplicar un movimiento (servicio de dominio).
// Una salida mayor que el stock actual devuelve ErrInsufficientStock: el stock nunca queda negativo.
func NextQuantity(current int64, kind entity.MovementKind, qty int64) (int64, error) {
	if !kind.Valid() {
		return current, fmt.Errorf("%w: tipo de movimiento %q (IN|OUT)", domain.ErrInvalidInput, kind)
	}
	if qty <= 0 {
		return current, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if kind == entity.MovementOut && qty > current {
		return current, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, current, qty)
	}
	return current + kind.Sign()*qty, nil
}

// Share porcentaje de part sobre total con 2 decimales. total <= 0 devuelve 0.
func Share(part, total int64) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(total)).Round(2)
}
