package cli

import (
	"bytes"
	"fmt"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/report"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
)

const dateTimeLayout = "02/01/2006 15:04"

func productsMarkdown(title string, list []*entity.Product) string {
	var buf bytes.Buffer
	m := md.NewMarkdown(&buf)
	m.H1(title)
	if len(list) == 0 {
		m.PlainText(md.Italic("No hay productos."))
		return m.String()
	}
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			cell(p.Category),
			strconv.FormatInt(p.Quantity, 10),
			cell(p.Location),
		})
	}
	m.Table(md.TableSet{
		Header:    []string{"ID", "Nombre", "Categoría", "Cant.", "Ubicación"},
		Rows:      rows,
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
	})
	m.PlainText(fmt.Sprintf("%d producto(s)", len(list)))
	return m.String()
}

func productMarkdown(p *entity.Product, movs []*entity.Movement) string {
	var buf bytes.Buffer
	m := md.NewMarkdown(&buf)
	m.H1(fmt.Sprintf("%s (#%d)", p.Name, p.ID))
	m.BulletList(
		md.Bold("Cantidad")+": "+strconv.FormatInt(p.Quantity, 10),
		md.Bold("Categoría")+": "+cell(p.Category),
		md.Bold("Ubicación")+": "+cell(p.Location),
		md.Bold("Descripción")+": "+cell(p.Description),
		md.Bold("Alta")+": "+p.CreatedAt.Local().Format(dateTimeLayout),
	)
	m.H2("Movimientos")
	writeMovements(m, movs, false)
	return m.String()
}

func movementsMarkdown(list []*entity.Movement) string {
	var buf bytes.Buffer
	m := md.NewMarkdown(&buf)
	m.H1("Movimientos")
	writeMovements(m, list, true)
	return m.String()
}

func writeMovements(m *md.Markdown, list []*entity.Movement, withProduct bool) {
	if len(list) == 0 {
		m.PlainText(md.Italic("Sin movimientos."))
		return
	}
	header := []string{"Fecha", "Tipo", "Cant.", "Nota"}
	align := []md.TableAlignment{md.AlignLeft, md.AlignCenter, md.AlignRight, md.AlignLeft}
	if withProduct {
		header = append([]string{"Fecha", "Producto"}, header[1:]...)
		align = append([]md.TableAlignment{md.AlignLeft, md.AlignLeft}, align[1:]...)
	}
	rows := make([][]string, 0, len(list))
	for _, mv := range list {
		row := []string{
			mv.OccurredAt.Local().Format(dateTimeLayout),
			string(mv.Kind),
			strconv.FormatInt(mv.Quantity, 10),
			cell(mv.Note),
		}
		if withProduct {
			row = append([]string{row[0], mv.ProductName}, row[1:]...)
		}
		rows = append(rows, row)
	}
	m.Table(md.TableSet{Header: header, Rows: rows, Alignment: align})
}

func cell(s string) string {
	if s == "" {
		return report.EmptyCell
	}
	return s
}
