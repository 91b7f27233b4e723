package entity

import "time"

// MovementKind tipo de movimiento de stock.
type MovementKind string

const (
	MovementIn  MovementKind = "IN"
	MovementOut MovementKind = "OUT"
)

// Valid indica si el tipo es IN u OUT.
func (k MovementKind) Valid() bool {
	return k == MovementIn || k == MovementOut
}

// Sign devuelve +1 para entradas y -1 para salidas.
func (k MovementKind) Sign() int64 {
	if k == MovementOut {
		return -1
	}
	return 1
}

// InitialStockNote nota del movimiento sintético creado al registrar un producto con stock.
const InitialStockNote = "initial stock"

// Movement registro inmutable de entrada o salida de stock.
// ProductName solo se completa en los listados (join con products).
type Movement struct {
	ID          int64        `db:"id"`
	ProductID   int64        `db:"product_id"`
	Kind        MovementKind `db:"kind"`
	Quantity    int64        `db:"quantity"`
	OccurredAt  time.Time    `db:"occurred_at"`
	Note        string       `db:"note"`
	ProductName string       `db:"product_name"`
}

// Signed devuelve la cantidad con signo (IN positiva, OUT negativa).
func (m *Movement) Signed() int64 {
	return m.Kind.Sign() * m.Quantity
}
