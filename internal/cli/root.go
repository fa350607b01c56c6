// Package cli wires the tender-autofill commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tendertools/tender-autofill/internal/config"
	"github.com/tendertools/tender-autofill/internal/version"
)

var (
	cfgPath  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "tender-autofill",
	Short: "Fill a master spreadsheet from tender documents",
	Long: `tender-autofill reads a folder of tender documents (PDF/DOCX/TXT/XLS/XLSX),
extracts key fields using regex rules, and writes one row per document into
a master sheet matching an existing column schema.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "", "log level override (debug|info|warn|error)")
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("tender-autofill %s\n", version.String()))
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the process logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
