package entity

import "time"

// Product representa un artículo del depósito.
// Los textos se guardan normalizados (recortados y en mayúsculas).
// Quantity solo cambia a través de movimientos; nunca es negativa.
type Product struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Location    string    `db:"location"`
	Quantity    int64     `db:"quantity"`
	CreatedAt   time.Time `db:"created_at"`
}

// ProductFields campos editables de un producto. nil = no se modifica.
// No existe campo de cantidad: el stock solo se mueve con entradas y salidas.
type ProductFields struct {
	Name        *string
	Description *string
	Category    *string
	Location    *string
}

// Empty indica que no se pidió cambiar ningún campo.
func (f ProductFields) Empty() bool {
	return f.Name == nil && f.Description == nil && f.Category == nil && f.Location == nil
}
