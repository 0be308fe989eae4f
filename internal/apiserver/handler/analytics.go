package handler

import (
	"net/http"

	"github.com/lzplanner/lzplanner/internal/analytics"
	"github.com/lzplanner/lzplanner/internal/store"
)

// AnalyticsHandler serves aggregate reporting over stored submissions.
type AnalyticsHandler struct {
	subs *store.SubmissionStore
}

func NewAnalyticsHandler(subs *store.SubmissionStore) *AnalyticsHandler {
	return &AnalyticsHandler{subs: subs}
}

// Summary handles GET /api/v1/analytics/summary. The same filters as the
// listing endpoint apply, so "summary for partner X this quarter" is one
// call.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.Summarize(h.subs.List(filter)))
}
