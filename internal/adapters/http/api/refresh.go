package api

import (
	"net/http"
)

// RefreshHandler handles manual refresh triggers.
type RefreshHandler struct {
	deps Dependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Dependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Status string `json:"status"`
}

// HandlePostRefresh handles POST /refresh requests. The refresh runs
// out of band; the handler acknowledges immediately.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	h.deps.TriggerRefresh()
	writeJSON(w, http.StatusAccepted, refreshResponse{Status: "accepted"})
}
