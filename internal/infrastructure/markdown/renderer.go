// Package markdown dibuja los reportes del depósito como markdown (nao1215/markdown).
// La CLI lo pasa por glamour y la API lo sirve como text/markdown.
package markdown

import (
	"bytes"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/report"
)

var _ report.MarkdownRenderer = (*Renderer)(nil)

// Renderer implementa report.MarkdownRenderer.
type Renderer struct{}

// NewRenderer construye el renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// RenderMarkdown arma título, tabla, totales y pie del documento.
func (r *Renderer) RenderMarkdown(doc *report.Document) (string, error) {
	var buf bytes.Buffer
	m := md.NewMarkdown(&buf)

	m.H1(doc.Title)
	if doc.Subtitle != "" {
		m.PlainText(doc.Subtitle)
	}

	if doc.Empty() {
		m.PlainText(md.Italic(doc.EmptyMessage))
	} else {
		table := md.TableSet{
			Header:    make([]string, 0, len(doc.Columns)),
			Alignment: make([]md.TableAlignment, 0, len(doc.Columns)),
			Rows:      make([][]string, 0, len(doc.Rows)),
		}
		for _, c := range doc.Columns {
			table.Header = append(table.Header, c.Header)
			if c.Numeric {
				table.Alignment = append(table.Alignment, md.AlignRight)
			} else {
				table.Alignment = append(table.Alignment, md.AlignLeft)
			}
		}
		for _, values := range doc.Rows {
			row := make([]string, len(doc.Columns))
			for i := range row {
				if i < len(values) {
					row[i] = escapeCell(values[i])
				}
			}
			table.Rows = append(table.Rows, row)
		}
		m.Table(table)
	}

	if len(doc.Totals) > 0 {
		items := make([]string, 0, len(doc.Totals))
		for _, t := range doc.Totals {
			items = append(items, md.Bold(t.Label)+": "+t.Value)
		}
		m.H2("Totales")
		m.BulletList(items...)
	}

	if !doc.GeneratedAt.IsZero() {
		m.PlainText(md.Italic(doc.Footer()))
	}
	return m.String(), nil
}

// escapeCell evita que un '|' dentro de un nombre rompa la tabla.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
