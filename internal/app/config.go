package app

import (
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SettingsPath   string // optional hcl file: settings block + syllabus
	StorePath      string // sqlite database; empty keeps the position in memory
	LuaModulesPath string // directory of .lua modules

	LogFormat    string
	LogLevel     string
	HistoryLimit int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []string

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat))
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel))
	}
	if cfg.HistoryLimit < 0 {
		errs = append(errs, fmt.Sprintf("history limit must not be negative, got %d", cfg.HistoryLimit))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration:\n- %s", strings.Join(errs, "\n- "))
	}
	return &cfg, nil
}
