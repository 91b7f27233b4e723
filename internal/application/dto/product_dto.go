package dto

import (
	"time"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
)

// RegisterProductInput entrada para registrar un producto. Quantity > 0 genera el movimiento de stock inicial.
type RegisterProductInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Quantity    int64  `json:"quantity" validate:"min=0"`
	Description string `json:"description" validate:"max=500"`
	Category    string `json:"category" validate:"max=100"`
	Location    string `json:"location" validate:"max=100"`
}

// UpdateProductRequest entrada para editar un producto (sin cantidad: el stock solo cambia con movimientos).
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
}

// ToFields convierte el request al conjunto cerrado de campos editables.
func (r UpdateProductRequest) ToFields() entity.ProductFields {
	return entity.ProductFields{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
	}
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatedResponse id del recurso creado.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// ToProductResponse mapea la entidad a su salida.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Location:    p.Location,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
	}
}

// ToProductResponses mapea una lista.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}
