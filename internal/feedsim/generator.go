package feedsim

import (
	"bytes"
	"crypto/rand"
	"encoding/csv"
	"fmt"
	"math/big"
	"time"

	"github.com/pizzapunten/pizzapunten/internal/domain/record"
	"github.com/pizzapunten/pizzapunten/internal/domain/types"
)

// Tuning constants for the generated roster behavior.
const (
	randomFloatDivisor = 1000000
	attendanceOdds     = 0.8
	injuryOdds         = 0.05
)

var rosterNames = []string{
	"Daan", "Sem", "Luuk", "Bram", "Thijs", "Lars", "Milan", "Jesse",
	"Finn", "Ruben", "Tim", "Niels", "Sven", "Koen", "Joris", "Wout",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// session is one generated pizza night.
type session struct {
	date   types.Date
	rows   map[string]rowFlags
	winner string
}

type rowFlags struct {
	present bool
	injured bool
}

// Generator builds and extends a synthetic season.
type Generator struct {
	roster   []string
	sessions []session
}

// NewGenerator creates a season of past sessions, one per week ending
// at the most recent cadence boundary before now.
func NewGenerator(players, sessions int) *Generator {
	if players < 1 {
		players = 1
	}
	if players > len(rosterNames) {
		players = len(rosterNames)
	}

	g := &Generator{roster: rosterNames[:players]}

	start := time.Now().Add(-time.Duration(sessions) * defaultCadence)
	for i := 0; i < sessions; i++ {
		g.appendSession(types.DateOf(start.Add(time.Duration(i) * defaultCadence)))
	}
	return g
}

// Grow appends one fresh session dated after the last generated one.
func (g *Generator) Grow() {
	last := time.Now()
	if n := len(g.sessions); n > 0 {
		d := g.sessions[n-1].date
		last = time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Add(defaultCadence)
	}
	g.appendSession(types.DateOf(last))
}

func (g *Generator) appendSession(date types.Date) {
	s := session{date: date, rows: make(map[string]rowFlags, len(g.roster))}

	var attendees []string
	for _, player := range g.roster {
		flags := rowFlags{
			present: getRandomFloat() < attendanceOdds,
			injured: getRandomFloat() < injuryOdds,
		}
		s.rows[player] = flags
		if flags.present && !flags.injured {
			attendees = append(attendees, player)
		}
	}
	// Someone has to win. An all-absent night gets no winner row.
	if len(attendees) > 0 {
		s.winner = attendees[int(getRandomFloat()*float64(len(attendees)))%len(attendees)]
	}

	g.sessions = append(g.sessions, s)
}

// RenderCSV renders the season in the published-spreadsheet shape:
// one row per player per session, flag columns holding "ja"/"nee".
func (g *Generator) RenderCSV(cols record.Columns) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{cols.Date, cols.Player, cols.Present, cols.Winner, cols.Injured}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}

	for _, s := range g.sessions {
		for _, player := range g.roster {
			flags := s.rows[player]
			row := []string{
				s.date.Key(),
				player,
				flag(flags.present),
				flag(s.winner == player),
				flag(flags.injured),
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("render csv: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Sessions reports how many sessions the season currently holds.
func (g *Generator) Sessions() int { return len(g.sessions) }

// Roster returns the generated player names.
func (g *Generator) Roster() []string { return g.roster }

func flag(b bool) string {
	if b {
		return "ja"
	}
	return "nee"
}
