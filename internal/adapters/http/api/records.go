package api

import (
	"net/http"

	"github.com/pizzapunten/pizzapunten/internal/domain/record"
)

// RecordsHandler handles record log requests.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

type recordsResponse struct {
	Records []record.Record `json:"records"`
	Status  status          `json:"status"`
}

// HandleGetRecords handles GET /records requests. The log view is
// reverse-chronological: newest session first.
func (h *RecordsHandler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	snap := h.deps.Snapshot()

	reversed := make([]record.Record, len(snap.Records))
	for i, rec := range snap.Records {
		reversed[len(snap.Records)-1-i] = rec
	}

	writeJSON(w, http.StatusOK, recordsResponse{
		Records: reversed,
		Status:  snapshotStatus(snap),
	})
}
