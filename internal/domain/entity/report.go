package entity

// CategoryTotals subtotales de una categoría. Category "" agrupa los productos sin categoría.
type CategoryTotals struct {
	Category     string `db:"category"`
	ProductCount int64  `db:"product_count"`
	UnitCount    int64  `db:"unit_count"`
}

// StockSummary resumen global del depósito.
type StockSummary struct {
	TotalProducts int64
	TotalUnits    int64
	PerCategory   []CategoryTotals
}

// ProductActivity unidades movidas por un producto en un período, con su stock actual.
type ProductActivity struct {
	ProductID int64  `db:"product_id"`
	Name      string `db:"name"`
	Category  string `db:"category"`
	TotalIn   int64  `db:"total_in"`
	TotalOut  int64  `db:"total_out"`
	Quantity  int64  `db:"quantity"`
}
