// Package api declares HTTP contracts and route registration helpers.
//
// The surface is read-only: every endpoint renders a view of the
// latest published snapshot, plus one trigger for an out-of-band
// refresh. Presentation never receives a mutable reference.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pizzapunten/pizzapunten/internal/adapters/repository"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the orchestrator.
type Dependencies interface {
	// Snapshot returns the latest published snapshot. Never nil.
	Snapshot() *repository.Snapshot

	// TriggerRefresh requests an out-of-band refresh cycle.
	TriggerRefresh()
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	leaderboardHandler *LeaderboardHandler
	statsHandler       *StatsHandler
	playersHandler     *PlayersHandler
	sessionsHandler    *SessionsHandler
	recordsHandler     *RecordsHandler
	refreshHandler     *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		leaderboardHandler: NewLeaderboardHandler(deps),
		statsHandler:       NewStatsHandler(deps),
		playersHandler:     NewPlayersHandler(deps),
		sessionsHandler:    NewSessionsHandler(deps),
		recordsHandler:     NewRecordsHandler(deps),
		refreshHandler:     NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleGetStats, "stats"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandleGetPlayer, "players"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleGetSessions, "sessions"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandleGetRecords, "records"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
}

// status mirrors the snapshot's loading/error flag pair so presentation
// can show interim and failure states without guessing from empty data.
type status struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

func snapshotStatus(snap *repository.Snapshot) status {
	return status{Loading: snap.Loading, Error: snap.Err}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
