package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	anuvad "github.com/anuvad-labs/anuvad-go"
	"github.com/anuvad-labs/anuvad-go/internal/config"
	"github.com/anuvad-labs/anuvad-go/internal/history"
	"github.com/anuvad-labs/anuvad-go/internal/logger"
	"github.com/anuvad-labs/anuvad-go/internal/metrics"
)

var (
	flagEnv        string
	flagBackendURL string
	flagLogLevel   string

	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "anuvadctl",
	Short: "Control plane client for the anuvad translation service",
	Long: `anuvadctl submits PDF documents for asynchronous translation between
English and Gujarati, Hindi or Marathi, tracks job progress, retrieves
results and manages the service's admin surface.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		var err error
		log, err = logger.New(flagEnv, logLevel())
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		// Downstream layers pull the request-scoped logger from the
		// command context.
		cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
		metrics.RegisterBackendMetrics()
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", config.GetEnv(),
		"configuration environment (local, dev, prod)")
	rootCmd.PersistentFlags().StringVar(&flagBackendURL, "backend-url", "",
		"backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "",
		"log level override (debug, info, warn, error)")
}

func logLevel() string {
	if flagLogLevel != "" {
		return flagLogLevel
	}
	return cfg.Logging.Level
}

// loadConfig loads the environment config file when present; a missing
// file is fine as long as the backend URL arrives via flag or env var.
func loadConfig() error {
	loaded, err := config.Load(flagEnv)
	if err == nil {
		cfg = loaded
	} else {
		cfg = config.Config{}
		cfg.Backend.BaseURL = os.Getenv("ANUVAD_BACKEND_URL")
	}

	if flagBackendURL != "" {
		cfg.Backend.BaseURL = flagBackendURL
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w (set --backend-url or ANUVAD_BACKEND_URL)", err)
	}
	return nil
}

// buildClient wires an SDK client from the loaded configuration.
func buildClient() (*anuvad.Client, error) {
	opts := []anuvad.Option{
		anuvad.WithTimeout(time.Duration(cfg.Backend.TimeoutSec) * time.Second),
		anuvad.WithPollInterval(time.Duration(cfg.Poll.IntervalSec) * time.Second),
		anuvad.WithMaxUploadBytes(cfg.Upload.MaxBytes),
		anuvad.WithCredentialFile(cfg.Admin.CredentialFile),
	}
	if logLevel() == "debug" {
		opts = append(opts, anuvad.WithLogger(
			slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	return anuvad.New(cfg.Backend.BaseURL, opts...)
}

// openHistory opens the local job-history store. History is best-effort;
// callers log and continue when it is unavailable.
func openHistory() (*history.Store, error) {
	if cfg.History.Path == "" {
		return nil, nil
	}
	return history.Open(cfg.History.Path)
}
