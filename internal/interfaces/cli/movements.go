package cli

import (
	"context"
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/dto"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/bootstrap"
)

const dateLayout = "2006-01-02"

// movementCmd implementa "in" y "out".
type movementCmd struct {
	env  *Env
	kind string
	note string
}

func (c *movementCmd) Name() string { return strings.ToLower(c.kind) }
func (c *movementCmd) Synopsis() string {
	if c.kind == "IN" {
		return "registrar una entrada de stock"
	}
	return "registrar una salida de stock"
}
func (c *movementCmd) Usage() string {
	return "deposito " + c.Name() + ` [-note <texto>] <id> <cantidad>

  Una salida mayor que el stock disponible se rechaza sin modificar nada.
`
}

func (c *movementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.note, "note", "", "Nota libre (remito, obra, proveedor...).")
}

func (c *movementCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return c.env.usageError("indique id y cantidad")
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		return c.env.usageError("%v", err)
	}
	qty, err := strconv.ParseInt(f.Arg(1), 10, 64)
	if err != nil {
		return c.env.usageError("cantidad inválida %q", f.Arg(1))
	}
	return c.env.withStore(ctx, func(app *bootstrap.Container) error {
		mov, err := app.Ledger.PostMovement(ctx, dto.PostMovementInput{
			ProductID: id,
			Kind:      c.kind,
			Quantity:  qty,
			Note:      c.note,
		})
		if err != nil {
			return err
		}
		p, err := app.Ledger.FindProduct(ctx, id)
		if err != nil {
			return err
		}
		c.env.printf("%s %d × %s. Stock actual: %d\n", mov.Kind, mov.Quantity, p.Name, p.Quantity)
		return nil
	})
}

// movementsCmd historial filtrado.
type movementsCmd struct {
	env       *Env
	productID int64
	from      string
	to        string
}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "historial de movimientos" }
func (*movementsCmd) Usage() string {
	return `deposito movements [-product <id>] [-from YYYY-MM-DD] [-to YYYY-MM-DD]

  Lista hasta 500 movimientos, del más reciente al más antiguo. Las fechas son inclusivas.
`
}

func (c *movementsCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.productID, "product", 0, "Solo los movimientos de este producto.")
	f.StringVar(&c.from, "from", "", "Desde (inclusive).")
	f.StringVar(&c.to, "to", "", "Hasta (inclusive).")
}

func (c *movementsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter := dto.MovementFilter{ProductID: c.productID}
	var err error
	if filter.From, err = parseDate(c.from); err != nil {
		return c.env.usageError("-from: %v", err)
	}
	if filter.To, err = parseDate(c.to); err != nil {
		return c.env.usageError("-to: %v", err)
	}
	return c.env.withStore(ctx, func(app *bootstrap.Container) error {
		list, err := app.Ledger.ListMovements(ctx, filter)
		if err != nil {
			return err
		}
		c.env.printMarkdown(movementsMarkdown(list))
		return nil
	})
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
