package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given metrics manager options", t, func() {
		Convey("When creating a manager with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.registry, ShouldEqual, registry)
			})
		})

		Convey("When creating a manager with custom namespace and subsystem", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("custom"),
				WithSubsystem("feed"),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "custom")
				So(manager.subsystem, ShouldEqual, "feed")
			})
		})

		Convey("When creating a manager with empty namespace", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithPrometheusRegistry(registry))

			Convey("Then the default namespace should be kept", func() {
				So(manager.namespace, ShouldEqual, "pizzapunten")
			})
		})

		Convey("When creating a manager with custom histogram buckets", func() {
			registry := prometheus.NewRegistry()
			buckets := []float64{1, 5, 10}
			manager := NewManager(
				WithHistogramBuckets(buckets),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the buckets should be applied", func() {
				So(manager.histogramBuckets, ShouldResemble, buckets)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording refresh and feed metrics", func() {
			So(func() {
				RecordRefreshCycle()
				RecordRefreshFailure("fetch")
				RecordRefreshDuration(12.5)
				UpdateLastRefreshUnix(1700000000)
				RecordFetchLatency(34.0)
				RecordFetchRetry()
				RecordRowsParsed(10)
				RecordRowsRejected(2)
				RecordParseWarning()
			}, ShouldNotPanic)
		})

		Convey("When recording snapshot and HTTP metrics", func() {
			So(func() {
				RecordSnapshotPublish()
				UpdateSnapshotLastUnix(1700000000)
				UpdateSnapshotLastDuration(3.0)
				UpdateRecordCount(42)
				UpdatePlayerCount(7)
				UpdateSessionCount(6)
				RecordHTTPRequest("leaderboard", "GET", "200")
				RecordHTTPRequestDuration("leaderboard", "GET", "200", 1.5)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry should be available", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
