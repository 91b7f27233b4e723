package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
)

// Kind tipo de reporte.
type Kind string

const (
	KindSummary  Kind = "summary"
	KindLowStock Kind = "low-stock"
	KindInStock  Kind = "in-stock"
	KindActivity Kind = "activity"
)

// Kinds todos los reportes disponibles, en el orden en que se ofrecen.
var Kinds = []Kind{KindSummary, KindLowStock, KindInStock, KindActivity}

// ParseKind valida el nombre de un reporte.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: reporte %q desconocido (summary|low-stock|in-stock|activity)", domain.ErrInvalidInput, s)
}

// Format formato de exportación.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
)

// ParseFormat valida el formato de exportación.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatXLSX, FormatMarkdown:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: formato %q desconocido (pdf|xlsx|md)", domain.ErrInvalidInput, s)
	}
}

// ContentType tipo MIME del formato.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Column columna de la tabla. Width usa la grilla de 12 columnas del PDF.
type Column struct {
	Header  string
	Width   int
	Numeric bool
}

// Total línea de totales al pie de la tabla.
type Total struct {
	Label string
	Value string
}

// Document representación neutral de un reporte; cada generador la dibuja en su formato.
type Document struct {
	Kind         Kind
	Title        string
	Subtitle     string
	Columns      []Column
	Rows         [][]string
	Totals       []Total
	EmptyMessage string
	GeneratedAt  time.Time
}

// Empty indica que la tabla no tiene filas.
func (d *Document) Empty() bool { return len(d.Rows) == 0 }

// Filename nombre de archivo sugerido: reporte_<kind>_<YYYYMMDD_HHMMSS>.<ext>.
func (d *Document) Filename(f Format) string {
	kind := strings.ReplaceAll(string(d.Kind), "-", "_")
	return fmt.Sprintf("reporte_%s_%s.%s", kind, d.GeneratedAt.Format("20060102_150405"), f)
}

// Footer leyenda de generación que llevan todos los formatos.
func (d *Document) Footer() string {
	return "Reporte generado el " + d.GeneratedAt.Format("02/01/2006 a las 15:04:05")
}
