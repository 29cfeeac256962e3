// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/okian/jobrec/internal/domain/analyzer"
	"github.com/okian/jobrec/internal/domain/model"
)

// InsightsHandler handles market insight requests.
type InsightsHandler struct {
	deps Dependencies
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps Dependencies) *InsightsHandler {
	return &InsightsHandler{deps: deps}
}

type insightsResponse struct {
	JobID            string                    `json:"job_id"`
	Insights         analyzer.JobInsights      `json:"insights"`
	SalaryComparison analyzer.SalaryComparison `json:"salary_comparison"`
}

// HandleGetInsights handles GET /api/v1/insights/{job_id}?level=mid requests.
// The level parameter selects the benchmark band for the salary comparison.
func (h *InsightsHandler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_insights"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/insights/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	level := model.LevelMid
	if levelStr := r.URL.Query().Get("level"); levelStr != "" {
		parsed, err := model.ParseExperienceLevel(levelStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		level = parsed
	}

	insights, salary, err := h.deps.Insights(r.Context(), id, level)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, insightsResponse{
		JobID:            id,
		Insights:         insights,
		SalaryComparison: salary,
	})
}
