// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with production defaults.
// - External errors must be wrapped via this package's error helpers.
// - Scoring weights and thresholds are product-tuned values, so they live
//   here rather than as literals in the engine.
package config

import (
	"runtime"

	"github.com/okian/jobrec/internal/domain/types"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory posting ingest queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the posting fingerprint cache.
	DedupeSize int `koanf:"dedupe_size"`

	// DefaultTopK is how many recommendations a request gets when it does
	// not ask for a specific count. Zero means return all candidates.
	DefaultTopK int `koanf:"default_top_k"`

	// MaxJobsLimit caps GET /api/v1/jobs?limit.
	MaxJobsLimit int `koanf:"max_jobs_limit"`

	// ScoreWeights combines the six sub-scores into the overall score.
	// Must be non-negative and sum to 1.0.
	ScoreWeights types.Weights `koanf:"score_weights"`

	// FuzzyThreshold is the minimum string-similarity ratio accepted as a
	// fuzzy skill match, in (0,1].
	FuzzyThreshold float64 `koanf:"fuzzy_threshold"`

	// SynonymScore is the match score granted to synonym-table hits.
	SynonymScore float64 `koanf:"synonym_score"`

	// NeutralScore is returned for sub-scores that lack the data for a
	// meaningful comparison, on the 0..100 scale.
	NeutralScore float64 `koanf:"neutral_score"`

	// CoverageBonus is the maximum skill-score bonus for full requirement
	// coverage.
	CoverageBonus float64 `koanf:"coverage_bonus"`
}

// Default tuning values.
const (
	defaultQueueSize      = 10_000
	defaultDedupeSize     = 50_000
	defaultMaxJobsLimit   = 500
	defaultFuzzyThreshold = 0.8
	defaultSynonymScore   = 0.95
	defaultNeutralScore   = 75
	defaultCoverageBonus  = 10
	workerCPUMultiplier   = 4
)

// New creates a Config with production defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		QueueSize:      defaultQueueSize,
		WorkerCount:    runtime.NumCPU() * workerCPUMultiplier,
		DedupeSize:     defaultDedupeSize,
		DefaultTopK:    0,
		MaxJobsLimit:   defaultMaxJobsLimit,
		ScoreWeights:   types.DefaultWeights(),
		FuzzyThreshold: defaultFuzzyThreshold,
		SynonymScore:   defaultSynonymScore,
		NeutralScore:   defaultNeutralScore,
		CoverageBonus:  defaultCoverageBonus,
	}
}
