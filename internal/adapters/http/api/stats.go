package api

import (
	"net/http"
	"time"

	"github.com/pizzapunten/pizzapunten/internal/domain/stats"
)

// StatsHandler handles derived-metrics requests.
type StatsHandler struct {
	deps Dependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps Dependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

type statsResponse struct {
	*stats.Stats
	CycleID   string    `json:"cycle_id,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	Status    status    `json:"status"`
}

// HandleGetStats handles GET /stats requests.
func (h *StatsHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	snap := h.deps.Snapshot()
	writeJSON(w, http.StatusOK, statsResponse{
		Stats:     snap.Stats,
		CycleID:   snap.CycleID,
		FetchedAt: snap.FetchedAt,
		Status:    snapshotStatus(snap),
	})
}
