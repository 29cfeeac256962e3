// Package repository defines the job catalog interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/okian/jobrec/internal/domain/model"
)

// Stats is an immutable snapshot of catalog composition, published
// periodically for lock-free reads.
type Stats struct {
	Total        int            `json:"total_jobs"`
	BySource     map[string]int `json:"jobs_by_source"`
	ByLevel      map[string]int `json:"jobs_by_level"`
	NewestPosted time.Time      `json:"newest_posted"`
	GeneratedAt  time.Time      `json:"generated_at"`
}

// Store provides read/write access to the job catalog.
type Store interface {
	// Upsert stores a posting keyed by ID, replacing any previous version.
	// Returns true when the posting was newly inserted.
	Upsert(ctx context.Context, job model.JobPosting) (bool, error)

	// Get returns the posting with the given ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (model.JobPosting, error)

	// Recent returns up to n postings, newest first.
	// Returns ErrInvalidLimit when n < 1.
	Recent(ctx context.Context, n int) ([]model.JobPosting, error)

	// All returns every posting, newest first.
	All(ctx context.Context) ([]model.JobPosting, error)

	// Count returns the number of postings in the catalog.
	Count(ctx context.Context) int

	// Stats returns the latest published catalog statistics.
	Stats(ctx context.Context) Stats

	// Close stops background goroutines.
	Close() error
}
