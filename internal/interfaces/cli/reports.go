package cli

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/report"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/bootstrap"
)

var reportSynopsis = map[string]string{
	"summary":   "resumen de stock por categoría",
	"low-stock": "productos con stock bajo",
	"in-stock":  "productos con existencias",
	"activity":  "entradas y salidas de los últimos 12 meses",
}

// reportCmd muestra un reporte en la terminal.
type reportCmd struct {
	env       *Env
	name      string
	threshold int64
}

func (c *reportCmd) Name() string     { return c.name }
func (c *reportCmd) Synopsis() string { return reportSynopsis[c.name] }
func (c *reportCmd) Usage() string {
	if c.name == string(report.KindLowStock) {
		return `deposito low-stock [-threshold <n>]
`
	}
	return "deposito " + c.name + "\n"
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	if c.name == string(report.KindLowStock) {
		f.Int64Var(&c.threshold, "threshold", -1, "Umbral (cantidad <= umbral). Por defecto LOW_STOCK_THRESHOLD.")
	}
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := report.ParseKind(c.name)
	if err != nil {
		return c.env.fail(err)
	}
	opts := c.options()
	return c.env.withStore(ctx, func(app *bootstrap.Container) error {
		out, err := app.Reports.Markdown(ctx, kind, opts)
		if err != nil {
			return err
		}
		c.env.printMarkdown(out)
		return nil
	})
}

func (c *reportCmd) options() report.Options {
	if c.threshold < 0 {
		return report.Options{}
	}
	t := c.threshold
	return report.Options{Threshold: &t}
}

// exportCmd genera el archivo de un reporte.
type exportCmd struct {
	env       *Env
	format    string
	output    string
	threshold int64
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "exportar un reporte a PDF, XLSX o markdown" }
func (*exportCmd) Usage() string {
	return `deposito export [-format pdf|xlsx|md] [-o <archivo|directorio>] [-threshold <n>] <summary|low-stock|in-stock|activity>

  Sin -o el archivo se guarda en el directorio actual con nombre fechado.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", string(report.FormatPDF), "Formato: pdf, xlsx o md.")
	f.StringVar(&c.output, "o", "", "Archivo o directorio de destino.")
	f.Int64Var(&c.threshold, "threshold", -1, "Umbral para low-stock.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usageError("indique el reporte (summary|low-stock|in-stock|activity)")
	}
	kind, err := report.ParseKind(f.Arg(0))
	if err != nil {
		return c.env.fail(err)
	}
	format, err := report.ParseFormat(c.format)
	if err != nil {
		return c.env.fail(err)
	}
	var opts report.Options
	if c.threshold >= 0 {
		opts.Threshold = &c.threshold
	}
	return c.env.withStore(ctx, func(app *bootstrap.Container) error {
		data, filename, err := app.Reports.Export(ctx, kind, format, opts)
		if err != nil {
			return err
		}
		dest := filename
		if c.output != "" {
			dest = c.output
			if info, err := os.Stat(c.output); err == nil && info.IsDir() {
				dest = filepath.Join(c.output, filename)
			}
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return err
		}
		c.env.printf("Reporte guardado en %s\n", dest)
		return nil
	})
}
