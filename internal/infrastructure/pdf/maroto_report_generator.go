// Package pdf dibuja los reportes del depósito en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sistema de Gestión de Depósito + título del reporte │
//	│  Subtítulo (período / umbral)                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas del reporte (fondo azul en la cabecera)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: etiqueta / valor alineados a la derecha            │
//	│  FOOTER: fecha y hora de generación                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/report"
)

// AppTitle encabezado común de todos los reportes.
const AppTitle = "Sistema de Gestión de Depósito"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ report.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GeneratePDF genera el PDF del documento y devuelve sus bytes.
func (g *MarotoReportGenerator) GeneratePDF(_ context.Context, doc *report.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(AppTitle, true).
		Build()

	m := maroto.New(cfg)
	if err := m.RegisterFooter(footerRow(doc)); err != nil {
		return nil, fmt.Errorf("pdf: registrar pie: %w", err)
	}

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if doc.Empty() {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New(doc.EmptyMessage, props.Text{Size: 10, Align: align.Center, Top: 4, Color: colorGray}),
		)))
	} else {
		m.AddRows(tableHeaderRow(doc.Columns))
		m.AddRows(tableRows(doc)...)
	}

	if len(doc.Totals) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalsRows(doc.Totals)...)
	}

	pdf, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return pdf.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del sistema, título del reporte y subtítulo opcional.
func headerRow(doc *report.Document) core.Row {
	c := col.New(12).Add(
		text.New(AppTitle, props.Text{
			Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary, Top: 1,
		}),
		text.New(doc.Title, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 9,
		}),
	)
	height := 17.0
	if doc.Subtitle != "" {
		c.Add(text.New(doc.Subtitle, props.Text{Size: 8, Align: align.Center, Top: 16, Color: colorGray}))
		height = 22
	}
	return row.New(height).Add(c)
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow(columns []report.Column) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.Width).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: columnAlign(c),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(cols...)
}

// tableRows: una fila por registro, con franjas alternas.
func tableRows(doc *report.Document) []core.Row {
	result := make([]core.Row, 0, len(doc.Rows))
	for i, values := range doc.Rows {
		cols := make([]core.Col, 0, len(doc.Columns))
		for j, c := range doc.Columns {
			v := ""
			if j < len(values) {
				v = values[j]
			}
			if c.Numeric {
				v = formatThousands(v)
			}
			cols = append(cols, col.New(c.Width).Add(text.New(v, props.Text{
				Size: 8, Align: columnAlign(c), Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

// totalsRows: bloque de totales alineado a la derecha.
func totalsRows(totals []report.Total) []core.Row {
	rows := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, row.New(6).Add(
			col.New(4), // espacio izquierdo
			col.New(5).Add(text.New(t.Label+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			})),
			col.New(3).Add(text.New(formatThousands(t.Value), props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 1, Color: colorPrimary,
			})),
		))
	}
	return rows
}

// footerRow: leyenda con la fecha de generación, en todas las páginas.
func footerRow(doc *report.Document) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(doc.Footer(), props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func columnAlign(c report.Column) align.Type {
	if c.Numeric {
		return align.Right
	}
	return align.Left
}

// formatThousands inserta puntos de miles en un entero.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000". Otro texto se devuelve igual.
func formatThousands(s string) string {
	sign := ""
	digits := s
	if strings.HasPrefix(s, "-") {
		sign, digits = "-", s[1:]
	}
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return s
	}
	n := len(digits)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(digits) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
