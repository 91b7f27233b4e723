// Package xlsx exporta los reportes del depósito como planillas XLSX con excelize.
package xlsx

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/report"
)

var _ report.SpreadsheetGenerator = (*ExcelizeGenerator)(nil)

// ExcelizeGenerator implementa report.SpreadsheetGenerator.
// Una sola hoja: título, subtítulo, cabecera, filas, totales y pie.
type ExcelizeGenerator struct{}

// NewExcelizeGenerator construye el generador.
func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

// GenerateXLSX genera la planilla y devuelve sus bytes.
func (g *ExcelizeGenerator) GenerateXLSX(_ context.Context, doc *report.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	sheet := string(doc.Kind)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: nombrar hoja: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: sheet}
	w.set(1, 1, doc.Title, styles.title)
	r := 2
	if doc.Subtitle != "" {
		w.set(1, r, doc.Subtitle, 0)
		r++
	}
	r++

	for i, c := range doc.Columns {
		w.set(i+1, r, c.Header, styles.header)
	}
	r++

	if doc.Empty() {
		w.set(1, r, doc.EmptyMessage, 0)
		r++
	}
	for _, values := range doc.Rows {
		for i, c := range doc.Columns {
			if i >= len(values) {
				break
			}
			w.set(i+1, r, cellValue(c, values[i]), 0)
		}
		r++
	}

	if len(doc.Totals) > 0 {
		r++
		for _, t := range doc.Totals {
			w.set(1, r, t.Label, styles.bold)
			w.set(2, r, cellValue(report.Column{Numeric: true}, t.Value), styles.bold)
			r++
		}
	}
	r++
	w.set(1, r, doc.Footer(), 0)

	for i, c := range doc.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: columna %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheet, name, name, float64(6+c.Width*5)); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}
	if w.err != nil {
		return nil, w.err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir planilla: %w", err)
	}
	return buf.Bytes(), nil
}

type styleSet struct {
	title, header, bold int
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "00467F"},
	}); err != nil {
		return s, fmt.Errorf("xlsx: estilo título: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	}); err != nil {
		return s, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("xlsx: estilo negrita: %w", err)
	}
	return s, nil
}

// sheetWriter acumula el primer error para no cortar el armado en cada celda.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(colNum, rowNum int, v interface{}, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(colNum, rowNum)
	if err != nil {
		w.err = fmt.Errorf("xlsx: celda (%d,%d): %w", colNum, rowNum, err)
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
		w.err = fmt.Errorf("xlsx: escribir %s: %w", cell, err)
		return
	}
	if style != 0 {
		if err := w.f.SetCellStyle(w.sheet, cell, cell, style); err != nil {
			w.err = fmt.Errorf("xlsx: estilo %s: %w", cell, err)
		}
	}
}

// cellValue escribe las columnas numéricas como número para que la planilla pueda sumarlas.
func cellValue(c report.Column, v string) interface{} {
	if !c.Numeric {
		return v
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if x, err := strconv.ParseFloat(v, 64); err == nil {
		return x
	}
	return v
}
