// Package aggregate folds the canonical record list into cumulative
// totals and per-date session breakdowns.
package aggregate

import (
	"github.com/pizzapunten/pizzapunten/internal/domain/record"
)

// Aggregate holds the folded view of one refresh cycle. It is built
// from scratch on every cycle and never patched incrementally.
//
// Invariant: TotalsByPlayer[p] equals the sum of SessionsByDate[d][p]
// over all dates d, for every player p.
type Aggregate struct {
	// TotalsByPlayer maps player to cumulative points across all records.
	TotalsByPlayer map[string]float64 `json:"totals_by_player"`

	// SessionsByDate maps session key (YYYY-MM-DD) to player to points
	// earned on that date.
	SessionsByDate map[string]map[string]float64 `json:"sessions_by_date"`

	// Players lists players in order of first appearance in the record
	// list. Derived metrics use this order to break ties deterministically.
	Players []string `json:"players"`

	// Dates lists the distinct session keys in chronological order.
	Dates []string `json:"dates"`
}

// Build folds records, which must be sorted ascending by date, into an
// Aggregate in a single pass. Records sharing player and date
// accumulate; they do not overwrite.
func Build(records []record.Record) *Aggregate {
	agg := &Aggregate{
		TotalsByPlayer: make(map[string]float64),
		SessionsByDate: make(map[string]map[string]float64),
	}

	for _, rec := range records {
		if _, seen := agg.TotalsByPlayer[rec.Player]; !seen {
			agg.Players = append(agg.Players, rec.Player)
		}
		agg.TotalsByPlayer[rec.Player] += rec.Points

		key := rec.Date.Key()
		session, ok := agg.SessionsByDate[key]
		if !ok {
			session = make(map[string]float64)
			agg.SessionsByDate[key] = session
			// Records arrive date-sorted, so appending keeps Dates sorted.
			agg.Dates = append(agg.Dates, key)
		}
		session[rec.Player] += rec.Points
	}

	return agg
}

// TotalSessions returns the number of distinct session dates.
func (a *Aggregate) TotalSessions() int {
	return len(a.Dates)
}
