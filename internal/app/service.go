// Package service provides the refresh orchestrator that drives the
// aggregation pipeline and publishes snapshots for the HTTP API.
package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pizzapunten/pizzapunten/internal/adapters/feed"
	"github.com/pizzapunten/pizzapunten/internal/adapters/repository"
	"github.com/pizzapunten/pizzapunten/internal/domain/aggregate"
	"github.com/pizzapunten/pizzapunten/internal/domain/record"
	"github.com/pizzapunten/pizzapunten/internal/domain/stats"
	"github.com/pizzapunten/pizzapunten/pkg/logger"
	"github.com/pizzapunten/pizzapunten/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultInterval = 30 * time.Second
)

// Feed abstracts the feed adapter so tests can substitute it.
type Feed interface {
	Fetch(ctx context.Context) (string, error)
	Parse(ctx context.Context, text string) []record.RawRow
}

// Service owns the refresh loop. Each cycle is a full re-derivation
// from the freshly fetched feed: fetch, parse, normalize, aggregate,
// derive, publish. No partial or incremental update exists; the data
// volume is small and full recomputation keeps the invariants simple.
type Service struct {
	mu sync.Mutex

	// Configuration
	feedURL    string
	interval   time.Duration
	columns    record.Columns
	httpClient *http.Client
	maxRetries int

	// Core components
	feed  Feed
	store *repository.Store

	// State
	started   bool
	cancel    context.CancelFunc
	done      chan struct{}
	refreshCh chan struct{}

	// cycleMu serializes refresh cycles: a manual trigger never
	// interleaves with a ticker cycle against the snapshot slot.
	cycleMu sync.Mutex

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFeedURL sets the CSV feed URL.
func WithFeedURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.feedURL = url
		}
	}
}

// WithInterval sets the refresh interval.
func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithColumns sets the feed column names.
func WithColumns(cols record.Columns) Option {
	return func(s *Service) {
		s.columns = cols
	}
}

// WithHTTPClient sets the HTTP client used for feed fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithMaxRetries bounds fetch retries within one cycle.
func WithMaxRetries(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithFeed sets a custom feed implementation.
func WithFeed(f Feed) Option {
	return func(s *Service) {
		if f != nil {
			s.feed = f
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		interval:   defaultInterval,
		columns:    record.DefaultColumns(),
		maxRetries: -1, // feed default applies
		store:      repository.NewStore(),
		refreshCh:  make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start launches the refresh loop: one immediate cycle, then one per
// interval. It returns once the loop goroutine is running.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("orchestrator")
	}
	if s.feed == nil {
		opts := []feed.Option{feed.WithLogger(s.logger)}
		if s.httpClient != nil {
			opts = append(opts, feed.WithHTTPClient(s.httpClient))
		}
		if s.maxRetries >= 0 {
			opts = append(opts, feed.WithMaxRetries(s.maxRetries))
		}
		s.feed = feed.NewClient(s.feedURL, opts...)
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.started = true

	s.logger.Info(ctx, "starting refresh loop",
		logger.String("interval", s.interval.String()),
	)
	go s.run(runCtx)

	return nil
}

// Stop cancels the refresh loop and waits for an in-flight cycle to
// finish. Nothing is mutated until the atomic publish, so no cleanup
// of partial state is needed.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.cancel()
	<-s.done
	s.started = false
	s.logger.Info(context.Background(), "refresh loop stopped")
}

// run is the refresh loop. A single goroutine drives all scheduled and
// manual cycles, so cycles are serialized by construction.
func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	_ = s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		case <-s.refreshCh:
			_ = s.Refresh(ctx)
		}
	}
}

// TriggerRefresh requests an out-of-band cycle. It never blocks; if a
// trigger is already pending the request coalesces with it.
func (s *Service) TriggerRefresh() {
	select {
	case s.refreshCh <- struct{}{}:
	default:
	}
}

// Refresh runs one full cycle synchronously: fetch, parse, aggregate,
// publish. On fetch failure the previous snapshot is preserved and the
// failure reason recorded. Parse and validation problems never fail a
// cycle; bad rows simply produce no records.
func (s *Service) Refresh(ctx context.Context) error {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	cycleID := uuid.NewString()
	start := time.Now()
	metrics.RecordRefreshCycle()

	s.logger.Debug(ctx, "cycle fetching", logger.String("cycle", cycleID))
	text, err := s.feed.Fetch(ctx)
	if err != nil {
		s.store.Fail(err.Error())
		metrics.RecordRefreshFailure("fetch")
		s.logger.Error(ctx, "cycle failed",
			logger.String("cycle", cycleID),
			logger.Error(err),
		)
		return err
	}
	fetchedAt := time.Now()

	s.logger.Debug(ctx, "cycle parsing", logger.String("cycle", cycleID))
	rows := s.feed.Parse(ctx, text)

	s.logger.Debug(ctx, "cycle aggregating", logger.String("cycle", cycleID))
	records := record.Build(rows, s.columns)
	if rejected := len(rows) - len(records); rejected > 0 {
		metrics.RecordRowsRejected(rejected)
	}
	agg := aggregate.Build(records)
	derived := stats.Compute(records, agg)

	s.store.Publish(&repository.Snapshot{
		CycleID:   cycleID,
		FetchedAt: fetchedAt,
		Records:   records,
		Aggregate: agg,
		Stats:     derived,
	})

	elapsed := time.Since(start)
	metrics.RecordRefreshDuration(float64(elapsed.Milliseconds()))
	metrics.UpdateLastRefreshUnix(time.Now().Unix())
	metrics.UpdateSnapshotLastDuration(float64(elapsed.Milliseconds()))

	s.logger.Info(ctx, "cycle published",
		logger.String("cycle", cycleID),
		logger.Int("rows", len(rows)),
		logger.Int("records", len(records)),
		logger.Int("players", len(agg.Players)),
		logger.Int("sessions", agg.TotalSessions()),
	)
	return nil
}

// Snapshot returns the latest published snapshot. Never nil.
func (s *Service) Snapshot() *repository.Snapshot {
	return s.store.Latest()
}
