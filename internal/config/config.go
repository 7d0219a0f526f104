// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"

	"github.com/pizzapunten/pizzapunten/internal/domain/record"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// FeedURL is the published-CSV endpoint to poll.
	FeedURL string `koanf:"feed_url"`

	// RefreshInterval is the polling cadence, as a Go duration string.
	RefreshInterval string `koanf:"refresh_interval"`

	// FetchMaxRetries bounds retry attempts per fetch.
	FetchMaxRetries int `koanf:"fetch_max_retries"`

	// Column headers expected in the feed. Defaults match the Dutch
	// spreadsheet the service was built around.
	ColumnDate    string `koanf:"column_date"`
	ColumnPlayer  string `koanf:"column_player"`
	ColumnPresent string `koanf:"column_present"`
	ColumnWinner  string `koanf:"column_winner"`
	ColumnInjured string `koanf:"column_injured"`
}

// New creates a Config populated with defaults.
func New() *Config {
	cols := record.DefaultColumns()
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		RefreshInterval: "30s",
		FetchMaxRetries: 3,
		ColumnDate:      cols.Date,
		ColumnPlayer:    cols.Player,
		ColumnPresent:   cols.Present,
		ColumnWinner:    cols.Winner,
		ColumnInjured:   cols.Injured,
	}
}

// Columns assembles the configured headers into a column mapping.
func (c *Config) Columns() record.Columns {
	return record.Columns{
		Date:    c.ColumnDate,
		Player:  c.ColumnPlayer,
		Present: c.ColumnPresent,
		Winner:  c.ColumnWinner,
		Injured: c.ColumnInjured,
	}
}

// Interval parses RefreshInterval. Load validates the field, so a
// Config that came through Load never fails here.
func (c *Config) Interval() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
