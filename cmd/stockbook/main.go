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

	"github.com/rogerio-castellano/stockbook/internal/cli"
	"github.com/rogerio-castellano/stockbook/internal/config"
	"github.com/rogerio-castellano/stockbook/internal/ledger"
	"github.com/rogerio-castellano/stockbook/internal/logging"
	"github.com/rogerio-castellano/stockbook/internal/repo"
)

func main() {
	configPath := flag.String("config", "", "path to a stockbook.yaml file")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	env := cli.NewEnv(func(ctx context.Context, env *cli.Env) (*ledger.Session, func() error, error) {
		return openSession(ctx, *configPath, env)
	})
	cli.Register(commander, env)

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := commander.Execute(ctx)
	stop()

	if err := env.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing storage: %v\n", err)
	}
	os.Exit(int(status))
}

// openSession loads the configuration and opens the ledgers on the
// configured backend. It only runs for commands that touch the ledgers.
func openSession(ctx context.Context, configPath string, env *cli.Env) (*ledger.Session, func() error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(cfg.Log, os.Stderr)
	env.Format = cli.NewFormatter(cfg.Display.Currency, cfg.Display.Color)

	store, closeStore, err := repo.OpenBlobStore(ctx, cfg)
	if err != nil {
		return nil, closeStore, fmt.Errorf("could not open %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend)

	s, err := ledger.Open(ctx, store, ledger.WithLogger(logger))
	if err != nil {
		return nil, closeStore, err
	}
	return s, closeStore, nil
}
