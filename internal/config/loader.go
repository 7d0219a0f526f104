package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PIZZA_CONFIG is set
//  3. env (prefix PIZZA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PIZZA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: PIZZA_ADDR, PIZZA_FEED_URL, ...
	// Map env keys like PIZZA_FEED_URL -> feed_url (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("PIZZA_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "pizza_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.FeedURL == "" {
		return fmt.Errorf("%w: feed_url must not be empty", ErrInvalidConfig)
	}
	d, err := time.ParseDuration(cfg.RefreshInterval)
	if err != nil || d <= 0 {
		return fmt.Errorf("%w: refresh_interval must be a positive duration", ErrInvalidConfig)
	}
	if cfg.FetchMaxRetries < 0 {
		return fmt.Errorf("%w: fetch_max_retries must not be negative", ErrInvalidConfig)
	}
	cols := cfg.Columns()
	for _, header := range []string{cols.Date, cols.Player, cols.Present, cols.Winner, cols.Injured} {
		if strings.TrimSpace(header) == "" {
			return fmt.Errorf("%w: column headers must not be blank", ErrInvalidConfig)
		}
	}
	return nil
}
