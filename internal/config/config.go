// Package config reads the command line defaults from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds defaults for the doceval command. Flags override them.
type Config struct {
	ExportDir  string  `env:"DOCEVAL_EXPORT_DIR" envDefault:"metrics"`
	OutputType string  `env:"DOCEVAL_OUTPUT_TYPE" envDefault:"json"`
	Workers    int     `env:"DOCEVAL_WORKERS" envDefault:"1"`
	Cutoff     float64 `env:"DOCEVAL_CUTOFF" envDefault:"0.8"`
	LogLevel   string  `env:"DOCEVAL_LOG_LEVEL" envDefault:"info"`
	LogFormat  string  `env:"DOCEVAL_LOG_FORMAT" envDefault:"text"`
}

// Load reads the environment after loading the given dotenv files, or ./.env
// when none are named. Missing dotenv files are ignored and never override
// variables already set.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Logger builds a logger writing to w in the configured format and level.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.LogFormat) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format %q: want text or json", c.LogFormat)
	}
}
