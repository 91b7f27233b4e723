package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/interfaces/cli"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/config"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/logger"
)

var (
	verbose = flag.Bool("v", false, "Mostrar los logs de nivel LOG_LEVEL (por defecto solo advertencias).")
	plain   = flag.Bool("plain", false, "Imprimir markdown sin formato.")
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	env := &cli.Env{Config: cfg, Out: os.Stdout, Err: os.Stderr}
	cli.Register(commander, env)

	flag.Parse()

	level := "warn"
	if *verbose {
		level = cfg.App.LogLevel
	}
	env.Log = logger.New(logger.Config{Env: cfg.App.Env, Level: level})
	env.Plain = *plain

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
