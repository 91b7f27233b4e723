package dto

import (
	"time"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
)

// PostMovementInput body para POST /api/inventory/movements.
type PostMovementInput struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Kind      string `json:"kind" validate:"required,oneof=IN OUT"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Note      string `json:"note" validate:"max=500"`
}

// MovementFilter filtros conjuntivos del historial. From y To son fechas de calendario
// (la hora se ignora) y ambas son inclusivas.
type MovementFilter struct {
	ProductID int64
	From      *time.Time
	To        *time.Time
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Kind        string    `json:"kind"`
	Quantity    int64     `json:"quantity"`
	OccurredAt  time.Time `json:"occurred_at"`
	Note        string    `json:"note,omitempty"`
}

// ToMovementResponse mapea la entidad a su salida.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Kind:        string(m.Kind),
		Quantity:    m.Quantity,
		OccurredAt:  m.OccurredAt,
		Note:        m.Note,
	}
}

// ToMovementResponses mapea una lista.
func ToMovementResponses(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
