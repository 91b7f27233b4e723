package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/inventory"
)

const (
	// NoCategoryLabel etiqueta del grupo de productos sin categoría.
	NoCategoryLabel = "SIN CATEGORÍA"
	// EmptyCell texto para celdas sin valor.
	EmptyCell = "N/A"
)

var productColumns = []Column{
	{Header: "ID", Width: 1, Numeric: true},
	{Header: "Nombre", Width: 4},
	{Header: "Categoría", Width: 3},
	{Header: "Cant.", Width: 1, Numeric: true},
	{Header: "Ubicación", Width: 3},
}

// Options parámetros opcionales de un reporte.
type Options struct {
	// Threshold umbral de stock bajo; nil = el configurado.
	Threshold *int64
}

// ReportUseCase arma los reportes del depósito y los exporta a PDF, XLSX o markdown.
type ReportUseCase struct {
	reader    StockReader
	pdf       PDFGenerator
	xlsx      SpreadsheetGenerator
	md        MarkdownRenderer
	threshold int64
}

// NewReportUseCase construye el caso de uso inyectando los generadores.
func NewReportUseCase(
	reader StockReader,
	pdf PDFGenerator,
	xlsx SpreadsheetGenerator,
	md MarkdownRenderer,
	lowStockThreshold int64,
) *ReportUseCase {
	return &ReportUseCase{
		reader:    reader,
		pdf:       pdf,
		xlsx:      xlsx,
		md:        md,
		threshold: lowStockThreshold,
	}
}

// Build arma el documento del reporte pedido.
func (uc *ReportUseCase) Build(ctx context.Context, kind Kind, opts Options) (*Document, error) {
	switch kind {
	case KindSummary:
		return uc.summary(ctx)
	case KindLowStock:
		threshold := uc.threshold
		if opts.Threshold != nil {
			threshold = *opts.Threshold
		}
		return uc.lowStock(ctx, threshold)
	case KindInStock:
		return uc.inStock(ctx)
	case KindActivity:
		return uc.activity(ctx)
	default:
		return nil, fmt.Errorf("%w: reporte %q desconocido", domain.ErrInvalidInput, kind)
	}
}

// Export arma el reporte y lo genera en el formato pedido.
//
// Retorna:
//   - (bytes, filename, nil)  si todo sale bien.
//   - domain.ErrInvalidInput  si el reporte o el formato no existen.
func (uc *ReportUseCase) Export(ctx context.Context, kind Kind, format Format, opts Options) ([]byte, string, error) {
	doc, err := uc.Build(ctx, kind, opts)
	if err != nil {
		return nil, "", err
	}
	var out []byte
	switch format {
	case FormatPDF:
		out, err = uc.pdf.GeneratePDF(ctx, doc)
	case FormatXLSX:
		out, err = uc.xlsx.GenerateXLSX(ctx, doc)
	case FormatMarkdown:
		var s string
		s, err = uc.md.RenderMarkdown(doc)
		out = []byte(s)
	default:
		return nil, "", fmt.Errorf("%w: formato %q desconocido", domain.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, "", fmt.Errorf("report: generar %s: %w", format, err)
	}
	return out, doc.Filename(format), nil
}

// Markdown atajo para la CLI: arma el reporte y lo devuelve como markdown.
func (uc *ReportUseCase) Markdown(ctx context.Context, kind Kind, opts Options) (string, error) {
	doc, err := uc.Build(ctx, kind, opts)
	if err != nil {
		return "", err
	}
	return uc.md.RenderMarkdown(doc)
}

func (uc *ReportUseCase) summary(ctx context.Context) (*Document, error) {
	s, err := uc.reader.StockSummary(ctx)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Kind:  KindSummary,
		Title: "REPORTE GENERAL DE STOCK",
		Columns: []Column{
			{Header: "Categoría", Width: 6},
			{Header: "Productos", Width: 2, Numeric: true},
			{Header: "Unidades", Width: 2, Numeric: true},
			{Header: "% Unidades", Width: 2, Numeric: true},
		},
		Totals: []Total{
			{Label: "Total de productos registrados", Value: itoa(s.TotalProducts)},
			{Label: "Total de unidades en stock", Value: itoa(s.TotalUnits)},
		},
		EmptyMessage: "No hay productos registrados.",
		GeneratedAt:  uc.reader.Now(),
	}
	for _, c := range s.PerCategory {
		doc.Rows = append(doc.Rows, []string{
			orDefault(c.Category, NoCategoryLabel),
			itoa(c.ProductCount),
			itoa(c.UnitCount),
			inventory.Share(c.UnitCount, s.TotalUnits).StringFixed(2),
		})
	}
	return doc, nil
}

func (uc *ReportUseCase) lowStock(ctx context.Context, threshold int64) (*Document, error) {
	list, err := uc.reader.LowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Kind:         KindLowStock,
		Title:        fmt.Sprintf("PRODUCTOS CON STOCK BAJO (≤ %d)", threshold),
		Columns:      productColumns,
		Rows:         productRows(list),
		EmptyMessage: "¡Ningún producto con stock bajo!",
		GeneratedAt:  uc.reader.Now(),
	}
	if len(list) > 0 {
		doc.Totals = []Total{{Label: "Productos con stock bajo", Value: strconv.Itoa(len(list))}}
	}
	return doc, nil
}

func (uc *ReportUseCase) inStock(ctx context.Context) (*Document, error) {
	list, err := uc.reader.InStock(ctx)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Kind:         KindInStock,
		Title:        "PRODUCTOS EN STOCK (CANTIDAD > 0)",
		Columns:      productColumns,
		Rows:         productRows(list),
		EmptyMessage: "¡Ningún producto en stock!",
		GeneratedAt:  uc.reader.Now(),
	}
	if len(list) > 0 {
		var units int64
		for _, p := range list {
			units += p.Quantity
		}
		doc.Totals = []Total{
			{Label: "Total de productos distintos", Value: strconv.Itoa(len(list))},
			{Label: "Total de unidades en stock", Value: itoa(units)},
		}
	}
	return doc, nil
}

func (uc *ReportUseCase) activity(ctx context.Context) (*Document, error) {
	since := uc.reader.TrailingYearStart()
	list, err := uc.reader.Activity(ctx, since)
	if err != nil {
		return nil, err
	}
	now := uc.reader.Now()
	doc := &Document{
		Kind:     KindActivity,
		Title:    "MOVIMIENTOS DE LOS ÚLTIMOS 12 MESES",
		Subtitle: fmt.Sprintf("Período: %s hasta %s", since.Format("2006-01-02"), now.Format("2006-01-02")),
		Columns: []Column{
			{Header: "ID", Width: 1, Numeric: true},
			{Header: "Producto", Width: 4},
			{Header: "Categoría", Width: 2},
			{Header: "Entradas", Width: 2, Numeric: true},
			{Header: "Salidas", Width: 1, Numeric: true},
			{Header: "Stock actual", Width: 2, Numeric: true},
		},
		EmptyMessage: "¡Ningún movimiento en los últimos 12 meses!",
		GeneratedAt:  now,
	}
	var totalIn, totalOut int64
	for _, a := range list {
		doc.Rows = append(doc.Rows, []string{
			itoa(a.ProductID), a.Name, orDefault(a.Category, EmptyCell),
			itoa(a.TotalIn), itoa(a.TotalOut), itoa(a.Quantity),
		})
		totalIn += a.TotalIn
		totalOut += a.TotalOut
	}
	if len(list) > 0 {
		doc.Totals = []Total{
			{Label: "Productos con movimiento", Value: strconv.Itoa(len(list))},
			{Label: "Total de entradas", Value: itoa(totalIn)},
			{Label: "Total de salidas", Value: itoa(totalOut)},
			{Label: "Saldo (entradas - salidas)", Value: itoa(totalIn - totalOut)},
		}
	}
	return doc, nil
}

func productRows(list []*entity.Product) [][]string {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			itoa(p.ID), p.Name, orDefault(p.Category, EmptyCell), itoa(p.Quantity), orDefault(p.Location, EmptyCell),
		})
	}
	return rows
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
