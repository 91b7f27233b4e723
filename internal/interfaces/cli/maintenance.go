package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/bootstrap"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/infrastructure/sqlstore"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/config"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/jwt"
)

type backupCmd struct {
	env *Env
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "copiar la base a un archivo de respaldo" }
func (*backupCmd) Usage() string {
	return `deposito backup [<archivo|directorio>]

  Sin destino el respaldo se guarda junto a la base como backup_deposito_<fecha>.db.
  Nunca sobrescribe un archivo existente.
`
}

func (*backupCmd) SetFlags(*flag.FlagSet) {}

func (c *backupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		return c.env.usageError("a lo sumo un destino")
	}
	return c.env.withStore(ctx, func(app *bootstrap.Container) error {
		path, err := app.Backup.Backup(ctx, f.Arg(0))
		if err != nil {
			return err
		}
		c.env.printf("Respaldo guardado en %s\n", path)
		return nil
	})
}

// restoreCmd reemplaza la base por un respaldo. Corre sin abrir el almacén.
type restoreCmd struct {
	env *Env
	yes bool
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "reemplazar la base por un respaldo" }
func (*restoreCmd) Usage() string {
	return `deposito restore [-yes] <respaldo.db>

  Verifica que el archivo sea una base del depósito y reemplaza DB_PATH.
  Si DB_PATH existe hace falta -yes. Detenga la API antes de restaurar.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirmar el reemplazo de la base actual.")
}

func (c *restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usageError("indique el archivo de respaldo")
	}
	db := c.env.Config.DB
	if db.Driver != config.DriverSQLite {
		return c.env.usageError("restore solo está disponible con DB_DRIVER=sqlite")
	}
	if _, err := os.Stat(db.Path); err == nil && !c.yes {
		return c.env.usageError("%s existe; use -yes para reemplazarla", db.Path)
	}
	if err := sqlstore.Restore(ctx, f.Arg(0), db.Path); err != nil {
		return c.env.fail(err)
	}
	c.env.printf("Base restaurada desde %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}

// tokenCmd emite un token para la API cuando AUTH_SECRET está configurado.
type tokenCmd struct {
	env      *Env
	operator string
	minutes  int
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "emitir un token de acceso a la API" }
func (*tokenCmd) Usage() string {
	return `deposito token [-operator <nombre>] [-minutes <n>]

  Requiere AUTH_SECRET. El token se usa como "Authorization: Bearer <token>".
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.operator, "operator", "operador", "Nombre del operador que queda en los logs.")
	f.IntVar(&c.minutes, "minutes", 0, "Vigencia en minutos. Por defecto JWT_EXPIRATION_MINUTES.")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	auth := c.env.Config.Auth
	if !auth.Enabled() {
		return c.env.usageError("AUTH_SECRET no está configurado: la API no exige token")
	}
	minutes := c.minutes
	if minutes <= 0 {
		minutes = auth.Expiration
	}
	tok, err := jwt.Generate(auth.Secret, c.operator, auth.Issuer, minutes)
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintln(c.env.Out, tok)
	return subcommands.ExitSuccess
}
