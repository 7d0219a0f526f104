package repository_test

import (
	"testing"
	"time"

	"github.com/pizzapunten/pizzapunten/internal/adapters/repository"
	"github.com/pizzapunten/pizzapunten/internal/domain/aggregate"
	"github.com/pizzapunten/pizzapunten/internal/domain/record"
	"github.com/pizzapunten/pizzapunten/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func testSnapshot(cycleID string) *repository.Snapshot {
	cols := record.DefaultColumns()
	records := record.Build([]record.RawRow{
		{cols.Date: "2024-01-01", cols.Player: "Alice", cols.Present: "ja", cols.Winner: "ja"},
	}, cols)
	agg := aggregate.Build(records)
	return &repository.Snapshot{
		CycleID:   cycleID,
		FetchedAt: time.Now(),
		Records:   records,
		Aggregate: agg,
		Stats:     stats.Compute(records, agg),
	}
}

func TestStore(t *testing.T) {
	Convey("Given a new snapshot store", t, func() {
		store := repository.NewStore()

		Convey("Then it should start with an empty loading snapshot", func() {
			snap := store.Latest()
			So(snap, ShouldNotBeNil)
			So(snap.Loading, ShouldBeTrue)
			So(snap.Err, ShouldBeEmpty)
			So(snap.Records, ShouldBeEmpty)
			So(snap.Stats.Leader, ShouldBeNil)
		})

		Convey("When a snapshot is published", func() {
			store.Publish(testSnapshot("cycle-1"))
			snap := store.Latest()

			Convey("Then readers should see the new data", func() {
				So(snap.CycleID, ShouldEqual, "cycle-1")
				So(snap.Loading, ShouldBeFalse)
				So(snap.Err, ShouldBeEmpty)
				So(snap.Records, ShouldHaveLength, 1)
				So(snap.Stats.Leader.Name, ShouldEqual, "Alice")
			})

			Convey("And a later cycle fails", func() {
				store.Fail("feed returned non-success status: 500")
				failed := store.Latest()

				Convey("Then the previous data should be preserved", func() {
					So(failed.CycleID, ShouldEqual, "cycle-1")
					So(failed.Records, ShouldHaveLength, 1)
					So(failed.Stats.Leader.Name, ShouldEqual, "Alice")
				})

				Convey("Then the failure reason should be visible", func() {
					So(failed.Err, ShouldContainSubstring, "500")
					So(failed.Loading, ShouldBeFalse)
				})

				Convey("And a subsequent publish clears the failure", func() {
					store.Publish(testSnapshot("cycle-3"))
					So(store.Latest().Err, ShouldBeEmpty)
					So(store.Latest().CycleID, ShouldEqual, "cycle-3")
				})
			})
		})

		Convey("When the first cycle fails before any publish", func() {
			store.Fail("connection refused")
			snap := store.Latest()

			Convey("Then the empty snapshot should carry the error", func() {
				So(snap.Err, ShouldEqual, "connection refused")
				So(snap.Records, ShouldBeEmpty)
			})
		})
	})
}
