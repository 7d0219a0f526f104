package api

import (
	"net/http"
	"sort"
)

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// leaderboardEntry is one ranked row.
type leaderboardEntry struct {
	Rank   int     `json:"rank"`
	Player string  `json:"player"`
	Points float64 `json:"points"`
}

type leaderboardResponse struct {
	Entries []leaderboardEntry `json:"entries"`
	// PizzaLine is the 1-based rank after which the midpoint marker is
	// drawn: the upper half of the table buys pizza for the lower half.
	PizzaLine int    `json:"pizza_line"`
	Status    status `json:"status"`
}

// HandleGetLeaderboard handles GET /leaderboard requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	snap := h.deps.Snapshot()
	agg := snap.Aggregate

	entries := make([]leaderboardEntry, 0, len(agg.Players))
	for _, player := range agg.Players {
		entries = append(entries, leaderboardEntry{
			Player: player,
			Points: agg.TotalsByPlayer[player],
		})
	}
	// Stable keeps first-appearance order among equal totals.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	writeJSON(w, http.StatusOK, leaderboardResponse{
		Entries:   entries,
		PizzaLine: (len(entries) + 1) / 2,
		Status:    snapshotStatus(snap),
	})
}
