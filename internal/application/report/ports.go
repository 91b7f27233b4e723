package report

import (
	"context"
	"time"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
)

// StockReader lecturas del libro de existencias que alimentan los reportes.
type StockReader interface {
	Now() time.Time
	LowStock(ctx context.Context, threshold int64) ([]*entity.Product, error)
	InStock(ctx context.Context) ([]*entity.Product, error)
	StockSummary(ctx context.Context) (*entity.StockSummary, error)
	TrailingYearStart() time.Time
	Activity(ctx context.Context, since time.Time) ([]*entity.ProductActivity, error)
}

// PDFGenerator dibuja un Document en PDF.
type PDFGenerator interface {
	GeneratePDF(ctx context.Context, doc *Document) ([]byte, error)
}

// SpreadsheetGenerator dibuja un Document en una planilla XLSX.
type SpreadsheetGenerator interface {
	GenerateXLSX(ctx context.Context, doc *Document) ([]byte, error)
}

// MarkdownRenderer dibuja un Document como texto markdown.
type MarkdownRenderer interface {
	RenderMarkdown(doc *Document) (string, error)
}
