// Package repository holds the published snapshot of the aggregation
// pipeline. The store owns exactly one snapshot slot; each refresh
// cycle replaces it atomically, so readers always see a complete,
// internally consistent view.
package repository

import (
	"sync/atomic"
	"time"

	"github.com/pizzapunten/pizzapunten/internal/domain/aggregate"
	"github.com/pizzapunten/pizzapunten/internal/domain/record"
	"github.com/pizzapunten/pizzapunten/internal/domain/stats"
	"github.com/pizzapunten/pizzapunten/pkg/metrics"
)

// Snapshot is the immutable product of one refresh cycle. Consumers
// hold a read-only reference; nothing in a published snapshot is ever
// mutated.
type Snapshot struct {
	// CycleID identifies the refresh cycle that produced this snapshot.
	CycleID string

	// FetchedAt is when the feed was fetched for this snapshot.
	FetchedAt time.Time

	// Records is the canonical record list, ascending by date.
	Records []record.Record

	// Aggregate is the folded totals and session view.
	Aggregate *aggregate.Aggregate

	// Stats carries the derived metrics.
	Stats *stats.Stats

	// Loading is true until the first cycle completes, success or not.
	Loading bool

	// Err records the last cycle failure reason; empty when the last
	// cycle published successfully.
	Err string
}

// Store provides atomic publish/read access to the current snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store seeded with an empty loading snapshot, so
// consumers can distinguish "not fetched yet" from "no data".
func NewStore() *Store {
	s := &Store{}
	agg := aggregate.Build(nil)
	s.current.Store(&Snapshot{
		Aggregate: agg,
		Stats:     stats.Compute(nil, agg),
		Loading:   true,
	})
	return s
}

// Publish atomically swaps in the snapshot of a successful cycle. The
// previous snapshot is discarded.
func (s *Store) Publish(snap *Snapshot) {
	snap.Loading = false
	snap.Err = ""
	s.current.Store(snap)

	metrics.RecordSnapshotPublish()
	metrics.UpdateSnapshotLastUnix(time.Now().Unix())
	metrics.UpdateRecordCount(len(snap.Records))
	metrics.UpdatePlayerCount(len(snap.Aggregate.Players))
	metrics.UpdateSessionCount(snap.Aggregate.TotalSessions())
}

// Fail records a cycle failure. The previously published data is
// preserved unchanged; stale-but-valid data beats a blank display.
func (s *Store) Fail(reason string) {
	prev := s.current.Load()
	next := *prev
	next.Loading = false
	next.Err = reason
	s.current.Store(&next)
}

// Latest returns the current snapshot. Never nil.
func (s *Store) Latest() *Snapshot {
	return s.current.Load()
}
