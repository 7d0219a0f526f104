// Package metrics provides Prometheus metrics for the pizzapunten service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pizzapunten service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Refresh Cycle Metrics - What really matters for a polling aggregator
	refreshCycles   prometheus.Counter
	refreshFailures *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	lastRefreshUnix prometheus.Gauge

	// Feed Metrics - Fetch and parse quality
	fetchLatency  prometheus.Histogram
	fetchRetries  prometheus.Counter
	rowsParsed    prometheus.Counter
	rowsRejected  prometheus.Counter
	parseWarnings prometheus.Counter

	// Snapshot Metrics - Published aggregate shape
	snapshotPublishes    prometheus.Counter
	snapshotLastUnix     prometheus.Gauge
	snapshotLastDuration prometheus.Gauge
	recordCount          prometheus.Gauge
	playerCount          prometheus.Gauge
	sessionCount         prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pizzapunten",
		subsystem:        "aggregator",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Refresh Cycle Metrics
	m.refreshCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_cycles_total",
		Help:      "Total number of refresh cycles started",
	})

	m.refreshFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "refresh_failures_total",
			Help:      "Total number of failed refresh cycles by reason",
		},
		[]string{"reason"},
	)

	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_duration_milliseconds",
		Help:      "Histogram of full refresh cycle duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.lastRefreshUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_refresh_unix",
		Help:      "Unix timestamp of the last completed refresh cycle",
	})

	// Feed Metrics
	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_milliseconds",
		Help:      "Feed fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.fetchRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_retries_total",
		Help:      "Total number of feed fetch retries after transient errors",
	})

	m.rowsParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_parsed_total",
		Help:      "Total number of raw feed rows parsed",
	})

	m.rowsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_rejected_total",
		Help:      "Total number of rows rejected during normalization (indicates data quality)",
	})

	m.parseWarnings = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_warnings_total",
		Help:      "Total number of malformed CSV rows skipped by the parser",
	})

	// Snapshot Metrics
	m.snapshotPublishes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_publish_total",
		Help:      "Total number of snapshots published",
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix timestamp of the last snapshot publish",
	})

	m.snapshotLastDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_duration_milliseconds",
		Help:      "Last snapshot rebuild duration in milliseconds",
	})

	m.recordCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "record_count",
		Help:      "Number of attendance records in the published snapshot",
	})

	m.playerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "player_count",
		Help:      "Number of distinct players in the published snapshot",
	})

	m.sessionCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_count",
		Help:      "Number of distinct session dates in the published snapshot",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordRefreshCycle increments the refresh cycles counter.
func RecordRefreshCycle() {
	globalManager.refreshCycles.Inc()
}

// RecordRefreshFailure increments the refresh failures counter for a reason.
func RecordRefreshFailure(reason string) {
	globalManager.refreshFailures.WithLabelValues(reason).Inc()
}

// RecordRefreshDuration records a full cycle duration in milliseconds.
func RecordRefreshDuration(durationMs float64) {
	globalManager.refreshDuration.Observe(durationMs)
}

// UpdateLastRefreshUnix sets the timestamp of the last completed cycle.
func UpdateLastRefreshUnix(ts int64) {
	globalManager.lastRefreshUnix.Set(float64(ts))
}

// RecordFetchLatency records feed fetch latency in milliseconds.
func RecordFetchLatency(latencyMs float64) {
	globalManager.fetchLatency.Observe(latencyMs)
}

// RecordFetchRetry increments the fetch retries counter.
func RecordFetchRetry() {
	globalManager.fetchRetries.Inc()
}

// RecordRowsParsed adds to the parsed rows counter.
func RecordRowsParsed(n int) {
	globalManager.rowsParsed.Add(float64(n))
}

// RecordRowsRejected adds to the rejected rows counter.
func RecordRowsRejected(n int) {
	globalManager.rowsRejected.Add(float64(n))
}

// RecordParseWarning increments the parse warnings counter.
func RecordParseWarning() {
	globalManager.parseWarnings.Inc()
}

// RecordSnapshotPublish increments the snapshot publish counter.
func RecordSnapshotPublish() {
	globalManager.snapshotPublishes.Inc()
}

// UpdateSnapshotLastUnix sets the timestamp of the last snapshot publish.
func UpdateSnapshotLastUnix(ts int64) {
	globalManager.snapshotLastUnix.Set(float64(ts))
}

// UpdateSnapshotLastDuration sets the last snapshot rebuild duration.
func UpdateSnapshotLastDuration(durationMs float64) {
	globalManager.snapshotLastDuration.Set(durationMs)
}

// UpdateRecordCount sets the record count gauge.
func UpdateRecordCount(count int) {
	globalManager.recordCount.Set(float64(count))
}

// UpdatePlayerCount sets the player count gauge.
func UpdatePlayerCount(count int) {
	globalManager.playerCount.Set(float64(count))
}

// UpdateSessionCount sets the session count gauge.
func UpdateSessionCount(count int) {
	globalManager.sessionCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateSystemMemoryUsage sets the memory usage gauge in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
