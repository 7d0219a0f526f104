package api

import (
	"net/http"
	"strings"

	"github.com/pizzapunten/pizzapunten/internal/domain/stats"
)

// PlayersHandler handles per-player detail requests.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

type playerResponse struct {
	Player string            `json:"player"`
	Points float64           `json:"points"`
	Stats  stats.PlayerStats `json:"stats"`
	Status status            `json:"status"`
}

// HandleGetPlayer handles GET /players/{name} requests. Names are
// case- and whitespace-sensitive, matching record identity.
func (h *PlayersHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/players/")
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	snap := h.deps.Snapshot()
	block, ok := snap.Stats.PlayerStats[name]
	if !ok {
		writeError(w, http.StatusNotFound, "player_not_found", ErrPlayerUnknown)
		return
	}

	writeJSON(w, http.StatusOK, playerResponse{
		Player: name,
		Points: snap.Aggregate.TotalsByPlayer[name],
		Stats:  block,
		Status: snapshotStatus(snap),
	})
}
