package app

import (
	"encoding/json"
	"net/http"

	"github.com/vaibhav-tools/catalog/internal/canonical"
)

type normalizeRequest struct {
	Labels     []string              `json:"labels"`
	Thresholds *canonical.Thresholds `json:"thresholds,omitempty"`
}

// handleNormalizeCategories maps raw category labels to the canonical list
// and returns per-label decisions plus the action summary. Pure; nothing is
// persisted.
func (a *App) handleNormalizeCategories(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if len(req.Labels) == 0 {
		writeError(w, http.StatusBadRequest, "labels required")
		return
	}

	t := canonical.DefaultThresholds()
	if req.Thresholds != nil {
		t = *req.Thresholds
	}
	writeJSON(w, http.StatusOK, a.Mapper.ProcessCategories(req.Labels, t))
}
