// Package config provides configuration loading for tender-autofill.
//
// Run inputs (documents directory, output path, rule files) come from CLI
// flags; this package covers the ambient settings that rarely change per
// run. Precedence, highest first:
//
//  1. Environment variables (TENDERFILL_LOGGING_LEVEL, TENDERFILL_HISTORY_PATH, ...)
//  2. YAML config file (optional, passed via --config)
//  3. Hardcoded defaults
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/tendertools/tender-autofill/internal/common"
)

const envPrefix = "TENDERFILL_"

// Config holds all application configuration.
type Config struct {
	Logging LoggingConfig `koanf:"logging"`
	Extract ExtractConfig `koanf:"extract"`
	History HistoryConfig `koanf:"history"`
}

// LoggingConfig holds logger-related configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // text | json
}

// ExtractConfig holds document-reading configuration.
type ExtractConfig struct {
	MaxFileSizeMB int  `koanf:"max_file_size_mb"` // files larger than this are skipped; 0 = no limit
	SkipHidden    bool `koanf:"skip_hidden"`      // skip dotfiles and dot-directories while walking
}

// HistoryConfig holds fill-job history configuration.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"` // sqlite database path
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Extract: ExtractConfig{MaxFileSizeMB: 64, SkipHidden: true},
		History: HistoryConfig{Enabled: false, Path: "./tenderfill-history.db"},
	}
}

// Load reads configuration from an optional YAML file, then overrides with
// TENDERFILL_* environment variables.
//
// Environment variables map section and field with the first underscore:
//
//	TENDERFILL_LOGGING_LEVEL        -> logging.level
//	TENDERFILL_EXTRACT_MAX_FILE_SIZE_MB -> extract.max_file_size_mb
//	TENDERFILL_HISTORY_PATH         -> history.path
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// TENDERFILL_LOGGING_LEVEL -> logging.level; split on the first
		// underscore only so field names keep theirs.
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return common.NewAppError("CONFIG_ERROR",
			fmt.Sprintf("logging.level %q: must be one of debug|info|warn|error", c.Logging.Level),
			common.ErrValidation)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return common.NewAppError("CONFIG_ERROR",
			fmt.Sprintf("logging.format %q: must be text or json", c.Logging.Format),
			common.ErrValidation)
	}
	if c.Extract.MaxFileSizeMB < 0 {
		return common.NewAppError("CONFIG_ERROR",
			fmt.Sprintf("extract.max_file_size_mb %d: must be >= 0", c.Extract.MaxFileSizeMB),
			common.ErrValidation)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return common.NewAppError("CONFIG_ERROR",
			"history.path is required when history is enabled",
			common.ErrValidation)
	}
	return nil
}

// SlogLevel maps the configured level string to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MaxFileSizeBytes returns the skip threshold in bytes, 0 meaning no limit.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Extract.MaxFileSizeMB) * 1024 * 1024
}
