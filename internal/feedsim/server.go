package feedsim

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pizzapunten/pizzapunten/pkg/logger"
)

const readHeaderTimeout = 5 * time.Second

// Server serves the generated season over HTTP. The aggregator's
// cache-busting query parameter is accepted and ignored, the way the
// real published endpoint behaves.
type Server struct {
	cfg *Config

	mu  sync.Mutex
	gen *Generator
}

// NewServer creates a simulator server from cfg.
func NewServer(cfg *Config) *Server {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Server{
		cfg: cfg,
		gen: NewGenerator(cfg.Players, cfg.Sessions),
	}
}

// Run serves until ctx is canceled. When GrowEvery is set, a fresh
// session is appended on that cadence so pollers see the feed move.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleFeed)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if s.cfg.GrowEvery > 0 {
		go s.grow(ctx)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), readHeaderTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Get().Info(ctx, "feed simulator listening",
		logger.String("addr", s.cfg.Addr),
		logger.Int("players", s.cfg.Players),
		logger.Int("sessions", s.cfg.Sessions))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) grow(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.GrowEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.gen.Grow()
			total := s.gen.Sessions()
			s.mu.Unlock()
			logger.Get().Info(ctx, "appended session", logger.Int("sessions", total))
		}
	}
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	body, err := s.gen.RenderCSV(s.cfg.Columns)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	_, _ = w.Write(body)
}
