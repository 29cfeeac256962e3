// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/jobrec/internal/adapters/mq/queue"
	"github.com/okian/jobrec/internal/adapters/repository"
	"github.com/okian/jobrec/internal/domain/analyzer"
	"github.com/okian/jobrec/internal/domain/model"
	"github.com/okian/jobrec/internal/domain/types"
)

// defaultMaxJobsLimit caps inline candidate sets and list queries.
const defaultMaxJobsLimit = 500

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitJob queues a posting for async catalog ingestion. Returns
	// queue.ErrQueueFull on backpressure.
	SubmitJob(ctx context.Context, job model.JobPosting) error

	// Read operations expose the catalog.
	Job(ctx context.Context, id string) (model.JobPosting, error)
	RecentJobs(ctx context.Context, n int) ([]model.JobPosting, error)

	// Recommend scores candidates (or the whole catalog when jobs is empty)
	// against a profile and returns the ranked top-K.
	Recommend(ctx context.Context, profile model.UserProfile, jobs []model.JobPosting, topK int) ([]types.Recommendation, error)

	// Insights assembles market context for one catalog posting.
	Insights(ctx context.Context, jobID string, level model.ExperienceLevel) (analyzer.JobInsights, analyzer.SalaryComparison, error)

	// MarketReport renders a scored recommendation run into a report.
	MarketReport(ctx context.Context, profile model.UserProfile, recs []types.Recommendation) (analyzer.MarketReport, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	jobsHandler            *JobsHandler
	recommendationsHandler *RecommendationsHandler
	insightsHandler        *InsightsHandler
	dashboardHandler       *dashboardHandler
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxJobsLimit int
}

// WithMaxJobsLimit caps both inline candidate sets on recommendation
// requests and the limit accepted by the job listing endpoint.
func WithMaxJobsLimit(n int) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxJobsLimit = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := &serverConfig{maxJobsLimit: defaultMaxJobsLimit}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		jobsHandler:            NewJobsHandler(deps, cfg.maxJobsLimit),
		recommendationsHandler: NewRecommendationsHandler(deps, cfg.maxJobsLimit),
		insightsHandler:        NewInsightsHandler(deps),
		dashboardHandler:       newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/v1/jobs", MetricsMiddleware(s.jobsHandler.HandleJobs, "jobs"))
	mux.HandleFunc("/api/v1/jobs/", MetricsMiddleware(s.jobsHandler.HandleGetJob, "job"))
	mux.HandleFunc("/api/v1/recommendations", MetricsMiddleware(s.recommendationsHandler.HandleRecommend, "recommendations"))
	mux.HandleFunc("/api/v1/insights/", MetricsMiddleware(s.insightsHandler.HandleGetInsights, "insights"))
}

type ackResponse struct {
	Status    string `json:"status"`
	JobID     string `json:"job_id,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// isBackpressure reports whether a submit failed because the ingest queue is
// saturated or draining for shutdown.
func isBackpressure(err error) bool {
	return errors.Is(err, queue.ErrQueueFull) || errors.Is(err, queue.ErrQueueClosed)
}
