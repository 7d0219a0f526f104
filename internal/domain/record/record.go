// Package record turns raw feed rows into typed attendance records.
//
// Nothing downstream of this package ever sees the untyped row form:
// rows are validated and scored here, and the resulting record list is
// the canonical input for aggregation.
package record

import (
	"sort"
	"strings"

	"github.com/pizzapunten/pizzapunten/internal/domain/scoring"
	"github.com/pizzapunten/pizzapunten/internal/domain/types"
)

// RawRow is one parsed CSV row, keyed by header name. Ephemeral; it is
// discarded after normalization.
type RawRow map[string]string

// Columns names the feed columns carrying each field. The source
// spreadsheet's headers are locale-specific domain data, so they are
// configured rather than hardcoded.
type Columns struct {
	Date    string
	Player  string
	Present string
	Winner  string
	Injured string
}

// DefaultColumns returns the Dutch headers of the published sheet.
func DefaultColumns() Columns {
	return Columns{
		Date:    "Datum",
		Player:  "Speler",
		Present: "Aanwezig",
		Winner:  "Winnaar",
		Injured: "Geblesseerd",
	}
}

// Record is one row's normalized meaning. Immutable once constructed.
type Record struct {
	Date    types.Date `json:"date"`
	Player  string     `json:"player"`
	Present string     `json:"present"`
	Winner  string     `json:"winner"`
	Injured string     `json:"injured"`
	Points  float64    `json:"points"`
}

// Normalize converts one raw row into a Record. It returns false when
// the row is rejected: blank date, blank player, or a date that does
// not parse. Rejection is expected in normal operation (blank trailing
// rows) and is not an error.
func Normalize(row RawRow, cols Columns) (Record, bool) {
	player := strings.TrimSpace(row[cols.Player])
	rawDate := strings.TrimSpace(row[cols.Date])
	if player == "" || rawDate == "" {
		return Record{}, false
	}

	date, err := types.ParseDate(rawDate)
	if err != nil {
		return Record{}, false
	}

	present := defaultFlag(row[cols.Present])
	winner := defaultFlag(row[cols.Winner])
	injured := defaultFlag(row[cols.Injured])

	return Record{
		Date:    date,
		Player:  player,
		Present: present,
		Winner:  winner,
		Injured: injured,
		Points:  scoring.Points(present, winner, injured),
	}, true
}

// defaultFlag substitutes the sheet's explicit "no" for missing cells
// so the raw flags in a Record are always populated.
func defaultFlag(v string) string {
	if v == "" {
		return "nee"
	}
	return v
}

// Build normalizes a sequence of raw rows into the canonical record
// list: rejects dropped, remainder sorted ascending by date. The sort
// is stable, so records sharing a date keep their feed order. An empty
// or header-only feed yields an empty list.
func Build(rows []RawRow, cols Columns) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if rec, ok := Normalize(row, cols); ok {
			records = append(records, rec)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return records
}
