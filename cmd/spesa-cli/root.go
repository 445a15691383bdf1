package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"spesa/internal/backend"
	"spesa/internal/cli"
	"spesa/internal/config"
	"spesa/internal/core"
	"spesa/internal/log"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	backend  string
	dbPath   string
	key      string
	logLevel string

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "spesa-cli",
		Short: "Track personal expenses from the terminal",
		Long: `spesa-cli records expenses into the same ledger the spesa web
dashboard uses, and prints the balance and the spending breakdown per category.

Configuration comes from the environment (and a .env file); flags override it.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	root.PersistentFlags().StringVar(&a.backend, "backend", "", 
		"storage backend ("+strings.Join(backend.GetBackendTypeStrings(), ", ")+"); overrides DATA_BACKEND")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "database file for the selected backend")
	root.PersistentFlags().StringVar(&a.key, "key", "", "storage key the ledger is saved under; overrides STORAGE_KEY")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to warn")

	root.AddCommand(a.addCmd())
	root.AddCommand(a.listCmd())
	root.AddCommand(a.rmCmd())
	root.AddCommand(a.clearCmd())
	root.AddCommand(a.summaryCmd())
	root.AddCommand(a.categoriesCmd())

	return root
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	cli.LoadEnvFile()

	cfg := config.Load()
	if a.backend != "" {
		cfg.DataBackend = a.backend
	}
	if a.dbPath != "" {
		switch cfg.DataBackend {
		case config.BackendSQLite:
			cfg.SQLiteDBPath = a.dbPath
		case config.BackendBolt:
			cfg.BoltDBPath = a.dbPath
		}
	}
	if a.key != "" {
		cfg.StorageKey = a.key
	}
	switch {
	case a.logLevel != "":
		cfg.LogLevel = a.logLevel
	case os.Getenv("LOG_LEVEL") == "":
		// Keep the terminal quiet unless asked.
		cfg.LogLevel = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = cli.SetupLogger(cfg, log.ComponentCLI)
	return nil
}

// withLedger opens the configured ledger for the duration of fn.
func (a *app) withLedger(cmd *cobra.Command, fn func(*core.Ledger) error) error {
	ledger, cleanup, err := cli.OpenLedger(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer func() {
		if closeErr := cleanup(); closeErr != nil {
			a.logger.Error("failed to close store", log.FieldError, closeErr)
		}
	}()

	return fn(ledger)
}
