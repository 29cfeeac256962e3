// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/jobrec/internal/domain/analyzer"
	"github.com/okian/jobrec/internal/domain/model"
	"github.com/okian/jobrec/internal/domain/types"
)

// validate checks request payload shapes before they reach the domain.
var validate = validator.New(validator.WithRequiredStructEnabled())

// profileRequest mirrors the OpenAPI schema for the candidate profile.
type profileRequest struct {
	Skills          []string       `json:"skills" validate:"required,min=1,dive,min=1"`
	ExperienceLevel string         `json:"experience_level" validate:"required,oneof=entry mid senior executive"`
	PreferredRoles  []string       `json:"preferred_roles" validate:"required,min=1,dive,min=1"`
	Location        string         `json:"location"`
	SalaryRange     *salaryRequest `json:"salary_range"`
	WorkType        string         `json:"work_type" validate:"omitempty,oneof=remote hybrid onsite any"`
}

// salaryRequest is the desired annual salary band.
type salaryRequest struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gtefield=Min"`
}

// recommendationRequest mirrors the OpenAPI schema for POST /api/v1/recommendations.
// An empty jobs array means "score the whole catalog".
type recommendationRequest struct {
	Profile       profileRequest     `json:"profile" validate:"required"`
	Jobs          []model.JobPosting `json:"jobs,omitempty"`
	TopK          int                `json:"top_k" validate:"gte=0"`
	IncludeReport bool               `json:"include_report"`
}

type recommendationResponse struct {
	Count           int                    `json:"count"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Report          *analyzer.MarketReport `json:"market_report,omitempty"`
}

// toProfile converts the validated payload into a domain profile. The domain
// constructor re-validates the experience level and salary band; its error is
// still surfaced as a 400 upstream.
func (p profileRequest) toProfile() (model.UserProfile, error) {
	opts := make([]model.ProfileOption, 0, 3)
	if p.Location != "" {
		opts = append(opts, model.WithLocation(p.Location))
	}
	if p.SalaryRange != nil {
		opts = append(opts, model.WithSalaryRange(p.SalaryRange.Min, p.SalaryRange.Max))
	}
	if p.WorkType != "" {
		opts = append(opts, model.WithWorkType(model.WorkType(p.WorkType)))
	}
	return model.NewUserProfile(p.Skills, p.ExperienceLevel, p.PreferredRoles, opts...)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps    Dependencies
	maxJobs int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps Dependencies, maxJobs int) *RecommendationsHandler {
	if maxJobs < 1 {
		maxJobs = defaultMaxJobsLimit
	}
	return &RecommendationsHandler{deps: deps, maxJobs: maxJobs}
}

// HandleRecommend handles POST /api/v1/recommendations requests.
func (h *RecommendationsHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Jobs) > h.maxJobs {
		err := fmt.Errorf("at most %d inline jobs per request", h.maxJobs)
		writeError(w, http.StatusBadRequest, "limit_exceeded", WrapKind(op, ErrBadRequest, err))
		return
	}

	profile, err := req.Profile.toProfile()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	recs, err := h.deps.Recommend(r.Context(), profile, req.Jobs, req.TopK)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	resp := recommendationResponse{Count: len(recs), Recommendations: recs}
	if req.IncludeReport && len(recs) > 0 {
		report, err := h.deps.MarketReport(r.Context(), profile, recs)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		resp.Report = &report
	}
	writeJSON(w, http.StatusOK, resp)
}
