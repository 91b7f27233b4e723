package cli

import (
	"context"
	"flag"
	"strings"

	"github.com/google/subcommands"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/dto"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/bootstrap"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
)

// registerCmd da de alta un producto.
type registerCmd struct {
	env         *Env
	name        string
	quantity    int64
	description string
	category    string
	location    string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "registrar un producto nuevo" }
func (*registerCmd) Usage() string {
	return `deposito register -name <nombre> [-qty <n>] [-category <c>] [-location <u>] [-desc <texto>]

  Registra un producto. Con -qty > 0 se registra además una entrada de stock inicial.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Nombre del producto (obligatorio).")
	f.Int64Var(&c.quantity, "qty", 0, "Stock inicial.")
	f.StringVar(&c.description, "desc", "", "Descripción.")
	f.StringVar(&c.category, "category", "", "Categoría.")
	f.StringVar(&c.location, "location", "", "Ubicación en el depósito.")
}

func (c *registerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.name) == "" {
		return c.env.usageError("-name es obligatorio")
	}
	return c.env.withStore(ctx, func(app *bootstrap.Container) error {
		id, err := app.Ledger.RegisterProduct(ctx, dto.RegisterProductInput{
			Name:        c.name,
			Quantity:    c.quantity,
			Description: c.description,
			Category:    c.category,
			Location:    c.location,
		})
		if err != nil {
			return err
		}
		c.env.printf("Producto registrado con id %d\n", id)
		return nil
	})
}

// productsCmd lista el catálogo.
type productsCmd struct {
	env      *Env
	category string
}

func (*productsCmd) Name() string     { return "products" }
func (*productsCmd) Synopsis() string { return "listar productos" }
func (*productsCmd) Usage() string {
	return `deposito products [-category <c>]

  Lista los productos por nombre, opcionalmente de una sola categoría.
`
}

func (c *productsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "Filtrar por categoría.")
}

func (c *productsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.withStore(ctx, func(app *bootstrap.Container) error {
		list, err := app.Ledger.ListProducts(ctx, c.category)
		if err != nil {
			return err
		}
		title := "Productos"
		if c.category != "" {
			title += " · " + strings.ToUpper(strings.TrimSpace(c.category))
		}
		c.env.printMarkdown(productsMarkdown(title, list))
		return nil
	})
}

type searchCmd struct {
	env *Env
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "buscar productos por nombre" }
func (*searchCmd) Usage() string {
	return `deposito search <texto>

  Busca productos cuyo nombre contenga el texto (sin distinguir mayúsculas).
`
}

func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text := strings.Join(f.Args(), " ")
	if strings.TrimSpace(text) == "" {
		return c.env.usageError("indique el texto a buscar")
	}
	return c.env.withStore(ctx, func(app *bootstrap.Container) error {
		list, err := app.Ledger.SearchProductsByName(ctx, text)
		if err != nil {
			return err
		}
		c.env.printMarkdown(productsMarkdown("Búsqueda: "+text, list))
		return nil
	})
}

// showCmd ficha de un producto con su historial.
type showCmd struct {
	env *Env
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "mostrar un producto y sus movimientos" }
func (*showCmd) Usage() string {
	return `deposito show <id>
`
}

func (*showCmd) SetFlags(*flag.FlagSet) {}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usageError("indique el id del producto")
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		return c.env.usageError("%v", err)
	}
	return c.env.withStore(ctx, func(app *bootstrap.Container) error {
		p, err := app.Ledger.FindProduct(ctx, id)
		if err != nil {
			return err
		}
		movs, err := app.Ledger.ListMovements(ctx, dto.MovementFilter{ProductID: id})
		if err != nil {
			return err
		}
		c.env.printMarkdown(productMarkdown(p, movs))
		return nil
	})
}

// updateCmd edita solo los campos cuyo flag se indicó.
type updateCmd struct {
	env         *Env
	name        string
	description string
	category    string
	location    string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "editar nombre, descripción, categoría o ubicación" }
func (*updateCmd) Usage() string {
	return `deposito update [-name <n>] [-desc <d>] [-category <c>] [-location <u>] <id>

  Modifica solo los campos indicados. La cantidad no se edita: use in / out.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Nuevo nombre.")
	f.StringVar(&c.description, "desc", "", "Nueva descripción (vacía la borra).")
	f.StringVar(&c.category, "category", "", "Nueva categoría (vacía la borra).")
	f.StringVar(&c.location, "location", "", "Nueva ubicación (vacía la borra).")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usageError("indique el id del producto")
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		return c.env.usageError("%v", err)
	}
	var fields entity.ProductFields
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			fields.Name = &c.name
		case "desc":
			fields.Description = &c.description
		case "category":
			fields.Category = &c.category
		case "location":
			fields.Location = &c.location
		}
	})
	return c.env.withStore(ctx, func(app *bootstrap.Container) error {
		if err := app.Ledger.UpdateProductFields(ctx, id, fields); err != nil {
			return err
		}
		c.env.printf("Producto %d actualizado\n", id)
		return nil
	})
}
