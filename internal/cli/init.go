// Package cli provides common CLI initialization utilities and the styled
// terminal output shared by cmd/spesa and cmd/spesa-cli.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spesa/internal/backend"
	"spesa/internal/config"
	"spesa/internal/core"
	"spesa/internal/log"
	"spesa/internal/storage"
)

// SetupLogger builds the application logger from cfg and installs it as the
// slog default, so packages logging through slog share its handler.
func SetupLogger(cfg *config.Config, component string) *log.Logger {
	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	logCfg.Format = cfg.LogFormat
	logCfg.Component = component
	logCfg.Output = os.Stderr

	logger := log.New(logCfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenLedger opens the configured store and hydrates a ledger from it.
// The returned cleanup closes the store and must be called once the ledger
// is no longer used.
func OpenLedger(ctx context.Context, cfg *config.Config, logger *log.Logger) (*core.Ledger, backend.CleanupFunc, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	result, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger).CreateStore(ctx, backendCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s store: %w", backendCfg.Type, err)
	}

	gateway := storage.NewGateway(result.Store, cfg.StorageKey)
	ledger := core.NewLedger(ctx, gateway)

	logger.InfoContext(ctx, "Ledger ready",
		log.FieldBackend, backendCfg.Type.String(),
		log.FieldCount, ledger.Len(),
		"key", gateway.Key())

	return ledger, result.Cleanup, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
