package api

import (
	"net/http"
)

// SessionsHandler handles session breakdown requests.
type SessionsHandler struct {
	deps Dependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps Dependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

type sessionEntry struct {
	Date   string             `json:"date"`
	Points map[string]float64 `json:"points"`
}

type sessionsResponse struct {
	Sessions []sessionEntry `json:"sessions"`
	Status   status         `json:"status"`
}

// HandleGetSessions handles GET /sessions requests. Sessions are
// returned in chronological order.
func (h *SessionsHandler) HandleGetSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	snap := h.deps.Snapshot()
	agg := snap.Aggregate

	sessions := make([]sessionEntry, 0, len(agg.Dates))
	for _, date := range agg.Dates {
		sessions = append(sessions, sessionEntry{
			Date:   date,
			Points: agg.SessionsByDate[date],
		})
	}

	writeJSON(w, http.StatusOK, sessionsResponse{
		Sessions: sessions,
		Status:   snapshotStatus(snap),
	})
}
