package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PAWS_CONFIG is set
//  3. env (prefix PAWS_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PAWS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PAWS_ADDR, PAWS_STORAGE_DRIVER, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("PAWS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "paws_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StorageDriver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("%w: unknown storage_driver %q", ErrInvalidConfig, c.StorageDriver)
	}
	if c.StorageDriver == "sqlite" && c.StoragePath == "" {
		return fmt.Errorf("%w: storage_path required for sqlite", ErrInvalidConfig)
	}
	switch c.WinnerPeriod {
	case "daily", "weekly":
	default:
		return fmt.Errorf("%w: unknown winner_period %q", ErrInvalidConfig, c.WinnerPeriod)
	}
	if c.MaxFeedLimit < 1 {
		return fmt.Errorf("%w: max_feed_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
