// Package main implements the entry point for the discussion API server,
// which serves categories, topics and posts as JSON resources.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/discuss-api/internal/config"
	"github.com/phrazzld/discuss-api/internal/platform/logger"
	"github.com/spf13/pflag"
)

// cliOptions are the flags that are not configuration keys.
type cliOptions struct {
	migrate     string
	autoMigrate bool
}

// newFlagSet declares the server's command-line flags. --port and
// --log-level are bound into the configuration by config.Load.
func newFlagSet() (*pflag.FlagSet, *cliOptions) {
	opts := &cliOptions{}
	fs := pflag.NewFlagSet("discuss-api", pflag.ContinueOnError)
	fs.String("config", "", "path to a configuration file (default ./config.yaml when present)")
	fs.Int("port", 0, "HTTP port to listen on")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&opts.migrate, "migrate", "", "run a migration command (up, down, status, version) and exit")
	fs.BoolVar(&opts.autoMigrate, "auto-migrate", false, "apply pending migrations before serving")
	return fs, opts
}

// main is the entry point for the discuss-api server.
func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run parses flags, loads configuration, sets up logging and either runs a
// migration command or serves until interrupted.
func run(args []string) error {
	fs, opts := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"base_path", cfg.API.BasePath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer func() { _ = db.Close() }()
		return runMigrations(ctx, db, opts.migrate, l)
	}

	if opts.autoMigrate {
		if err := runMigrations(ctx, db, "up", l); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
