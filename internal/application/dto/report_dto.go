package dto

import (
	"github.com/shopspring/decimal"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/inventory"
)

// CategoryTotalsResponse subtotales por categoría con su participación en unidades (%).
type CategoryTotalsResponse struct {
	Category     string          `json:"category"`
	ProductCount int64           `json:"product_count"`
	UnitCount    int64           `json:"unit_count"`
	UnitSharePct decimal.Decimal `json:"unit_share_pct"`
}

// StockSummaryResponse salida de GET /api/reports/summary.
type StockSummaryResponse struct {
	TotalProducts int64                    `json:"total_products"`
	TotalUnits    int64                    `json:"total_units"`
	PerCategory   []CategoryTotalsResponse `json:"per_category"`
}

// ToStockSummaryResponse mapea el resumen calculando la participación de cada categoría.
func ToStockSummaryResponse(s *entity.StockSummary) StockSummaryResponse {
	out := StockSummaryResponse{
		TotalProducts: s.TotalProducts,
		TotalUnits:    s.TotalUnits,
		PerCategory:   make([]CategoryTotalsResponse, 0, len(s.PerCategory)),
	}
	for _, c := range s.PerCategory {
		out.PerCategory = append(out.PerCategory, CategoryTotalsResponse{
			Category:     c.Category,
			ProductCount: c.ProductCount,
			UnitCount:    c.UnitCount,
			UnitSharePct: inventory.Share(c.UnitCount, s.TotalUnits),
		})
	}
	return out
}

// ProductActivityResponse unidades movidas por producto en el período.
type ProductActivityResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	TotalIn   int64  `json:"total_in"`
	TotalOut  int64  `json:"total_out"`
	Quantity  int64  `json:"quantity"`
}

// ToActivityResponses mapea la actividad.
func ToActivityResponses(list []*entity.ProductActivity) []ProductActivityResponse {
	out := make([]ProductActivityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ProductActivityResponse{
			ProductID: a.ProductID,
			Name:      a.Name,
			Category:  a.Category,
			TotalIn:   a.TotalIn,
			TotalOut:  a.TotalOut,
			Quantity:  a.Quantity,
		})
	}
	return out
}

// BackupRequest body para POST /api/maintenance/backup. Path es un nombre de archivo sin directorios;
// el respaldo queda junto a la base. Vacío = nombre por defecto.
type BackupRequest struct {
	Path string `json:"path" validate:"omitempty,max=1024"`
}

// BackupResponse ruta del respaldo generado.
type BackupResponse struct {
	Path string `json:"path"`
}
