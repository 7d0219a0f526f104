package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	service "github.com/pizzapunten/pizzapunten/internal/app"
	"github.com/pizzapunten/pizzapunten/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleCSV = "Datum,Speler,Aanwezig,Winnaar,Geblesseerd\n" +
	"2024-01-01,Alice,ja,ja,nee\n" +
	"2024-01-01,Bob,ja,nee,nee\n" +
	"2024-01-08,Alice,ja,nee,nee\n"

func init() {
	_ = logger.Init()
}

func TestRefreshCycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service over a healthy feed", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(sampleCSV))
		}))
		defer srv.Close()

		svc := service.New(service.WithFeedURL(srv.URL))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		So(svc.Refresh(ctx), ShouldBeNil)
		snap := svc.Snapshot()

		Convey("Then the published snapshot should carry the aggregate", func() {
			So(snap.Loading, ShouldBeFalse)
			So(snap.Err, ShouldBeEmpty)
			So(snap.Records, ShouldHaveLength, 3)
			So(snap.Aggregate.TotalsByPlayer["Alice"], ShouldEqual, 3.0)
			So(snap.Aggregate.TotalsByPlayer["Bob"], ShouldEqual, 1.0)
			So(snap.Stats.Leader.Name, ShouldEqual, "Alice")
			So(snap.Stats.TotalSessions, ShouldEqual, 2)
			So(snap.CycleID, ShouldNotBeEmpty)
		})

		Convey("Then refreshing again should replace the snapshot", func() {
			prev := snap.CycleID
			So(svc.Refresh(ctx), ShouldBeNil)
			So(svc.Snapshot().CycleID, ShouldNotEqual, prev)
		})
	})
}

func TestRefreshFailurePreservesSnapshot(t *testing.T) {
	ctx := context.Background()

	Convey("Given a feed that starts failing", t, func() {
		var failing atomic.Bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if failing.Load() {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(sampleCSV))
		}))
		defer srv.Close()

		svc := service.New(service.WithFeedURL(srv.URL), service.WithMaxRetries(0))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		So(svc.Refresh(ctx), ShouldBeNil)
		good := svc.Snapshot()
		So(good.Records, ShouldHaveLength, 3)

		Convey("When a cycle hits HTTP 500", func() {
			failing.Store(true)
			err := svc.Refresh(ctx)
			snap := svc.Snapshot()

			Convey("Then the cycle should fail", func() {
				So(err, ShouldNotBeNil)
			})

			Convey("Then the previous data should remain published", func() {
				So(snap.CycleID, ShouldEqual, good.CycleID)
				So(snap.Records, ShouldHaveLength, 3)
				So(snap.Stats.Leader.Name, ShouldEqual, "Alice")
			})

			Convey("Then the error flag should be set", func() {
				So(snap.Err, ShouldContainSubstring, "500")
			})
		})
	})
}

func TestStartRunsImmediateCycle(t *testing.T) {
	Convey("Given a started service", t, func() {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(sampleCSV))
		}))
		defer srv.Close()

		svc := service.New(
			service.WithFeedURL(srv.URL),
			service.WithInterval(time.Hour),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then a cycle should run on startup without waiting a tick", func() {
			deadline := time.Now().Add(2 * time.Second)
			for calls.Load() == 0 && time.Now().Before(deadline) {
				time.Sleep(10 * time.Millisecond)
			}
			So(calls.Load(), ShouldBeGreaterThan, 0)
		})

		Convey("And a manual trigger should run another cycle", func() {
			deadline := time.Now().Add(2 * time.Second)
			for calls.Load() == 0 && time.Now().Before(deadline) {
				time.Sleep(10 * time.Millisecond)
			}
			before := calls.Load()
			svc.TriggerRefresh()
			deadline = time.Now().Add(2 * time.Second)
			for calls.Load() == before && time.Now().Before(deadline) {
				time.Sleep(10 * time.Millisecond)
			}
			So(calls.Load(), ShouldBeGreaterThan, before)
		})
	})
}

func TestEmptyFeed(t *testing.T) {
	ctx := context.Background()

	Convey("Given a header-only feed", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("Datum,Speler,Aanwezig,Winnaar,Geblesseerd\n"))
		}))
		defer srv.Close()

		svc := service.New(service.WithFeedURL(srv.URL))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		So(svc.Refresh(ctx), ShouldBeNil)
		snap := svc.Snapshot()

		Convey("Then the snapshot should degrade to well-defined no-data values", func() {
			So(snap.Err, ShouldBeEmpty)
			So(snap.Records, ShouldBeEmpty)
			So(snap.Stats.TotalSessions, ShouldEqual, 0)
			So(snap.Stats.Leader, ShouldBeNil)
			So(snap.Stats.TrendLeader, ShouldBeNil)
			So(snap.Stats.BestWinRate, ShouldBeNil)
		})
	})
}
