// Package cli implementa la línea de comandos del depósito (google/subcommands).
// Las tablas se arman en markdown y se muestran con glamour.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/inventory"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/bootstrap"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/config"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/logger"
)

// Env lo que comparten todos los comandos. Cada comando abre el almacén, trabaja y lo cierra.
type Env struct {
	Config *config.Config
	Log    *logger.Logger
	Out    io.Writer
	Err    io.Writer
	// Plain imprime el markdown tal cual, sin glamour.
	Plain bool
	// LedgerOptions se pasan al libro al abrirlo (reloj en tests).
	LedgerOptions []inventory.Option
}

// Register registra los subcomandos.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(&registerCmd{env: env}, "productos")
	c.Register(&productsCmd{env: env}, "productos")
	c.Register(&searchCmd{env: env}, "productos")
	c.Register(&showCmd{env: env}, "productos")
	c.Register(&updateCmd{env: env}, "productos")

	c.Register(&movementCmd{env: env, kind: "IN"}, "movimientos")
	c.Register(&movementCmd{env: env, kind: "OUT"}, "movimientos")
	c.Register(&movementsCmd{env: env}, "movimientos")

	c.Register(&reportCmd{env: env, name: "summary"}, "reportes")
	c.Register(&reportCmd{env: env, name: "low-stock"}, "reportes")
	c.Register(&reportCmd{env: env, name: "in-stock"}, "reportes")
	c.Register(&reportCmd{env: env, name: "activity"}, "reportes")
	c.Register(&exportCmd{env: env}, "reportes")

	c.Register(&backupCmd{env: env}, "mantenimiento")
	c.Register(&restoreCmd{env: env}, "mantenimiento")
	c.Register(&tokenCmd{env: env}, "mantenimiento")
}

// withStore abre el almacén, ejecuta fn y lo cierra, traduciendo el error a código de salida.
func (e *Env) withStore(ctx context.Context, fn func(app *bootstrap.Container) error) subcommands.ExitStatus {
	app, err := bootstrap.Open(ctx, e.Config, e.Log, e.LedgerOptions...)
	if err != nil {
		return e.fail(err)
	}
	defer app.Close()
	if err := fn(app); err != nil {
		return e.fail(err)
	}
	return subcommands.ExitSuccess
}

// fail escribe el error en stderr. Los datos inválidos salen con código de uso.
func (e *Env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(e.Err, "Error: %v\n", err)
	if errors.Is(err, domain.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

func (e *Env) usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(e.Err, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

// printMarkdown muestra el markdown con glamour; si no puede, lo imprime sin formato.
func (e *Env) printMarkdown(md string) {
	if e.Plain {
		fmt.Fprint(e.Out, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(e.Out, out)
			return
		}
	}
	e.Log.Debug().Err(err).Msg("glamour")
	fmt.Fprint(e.Out, md)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return id, nil
}
