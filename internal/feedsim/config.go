// Package feedsim serves a synthetic attendance feed for local
// development: a small HTTP server that renders a generated season as
// the same CSV shape the real published spreadsheet exports.
package feedsim

import (
	"time"

	"github.com/pizzapunten/pizzapunten/internal/domain/record"
)

// Default simulation constants.
const (
	defaultPlayers   = 8
	defaultSessions  = 12
	defaultCadence   = 7 * 24 * time.Hour
	defaultGrowEvery = 0
)

// Config drives the simulator.
type Config struct {
	// Addr is the listen address for the simulated feed.
	Addr string

	// Players is the size of the roster.
	Players int

	// Sessions is the number of past sessions to generate.
	Sessions int

	// GrowEvery appends a fresh session at this interval while the
	// simulator runs. Zero disables growth.
	GrowEvery time.Duration

	// Columns are the headers to emit. Defaults to the Dutch set.
	Columns record.Columns
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Addr:      ":9081",
		Players:   defaultPlayers,
		Sessions:  defaultSessions,
		GrowEvery: defaultGrowEvery,
		Columns:   record.DefaultColumns(),
	}
}
