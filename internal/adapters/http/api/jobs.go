// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/jobrec/internal/domain/model"
)

// defaultListLimit is used when GET /api/v1/jobs omits the limit parameter.
const defaultListLimit = 50

// JobsHandler handles posting submission and catalog reads.
type JobsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(deps Dependencies, maxLimit int) *JobsHandler {
	if maxLimit < 1 {
		maxLimit = defaultMaxJobsLimit
	}
	return &JobsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleJobs handles POST /api/v1/jobs and GET /api/v1/jobs?limit=N.
func (h *JobsHandler) HandleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleSubmit queues one posting for async ingestion. Postings are
// fingerprint-deduplicated downstream, so resubmissions are acknowledged the
// same way as new openings.
func (h *JobsHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_job"
	var job model.JobPosting
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateJob(job); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if err := h.deps.SubmitJob(r.Context(), job); err != nil {
		if isBackpressure(err) {
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", JobID: job.ID})
}

// handleList returns up to limit catalog postings, newest first.
func (h *JobsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_jobs"
	n := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		n = parsed
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	jobs, err := h.deps.RecentJobs(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// HandleGetJob handles GET /api/v1/jobs/{job_id} requests.
func (h *JobsHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_job"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/jobs/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	job, err := h.deps.Job(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// validateJob enforces the minimum shape an ingestable posting must have.
// Everything else is free text that degrades to neutral scores downstream.
func validateJob(job model.JobPosting) error {
	switch {
	case strings.TrimSpace(job.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(job.Company) == "":
		return errors.New("missing company")
	}
	return nil
}
