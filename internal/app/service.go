// Package app wires the recommendation engine together and implements the
// dependencies required by the HTTP API: posting ingestion through the queue
// and worker pool, and synchronous recommendation requests over the catalog.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/jobrec/internal/adapters/mq/queue"
	"github.com/okian/jobrec/internal/adapters/mq/worker"
	"github.com/okian/jobrec/internal/adapters/repository"
	"github.com/okian/jobrec/internal/domain/analyzer"
	"github.com/okian/jobrec/internal/domain/dedupe"
	"github.com/okian/jobrec/internal/domain/model"
	"github.com/okian/jobrec/internal/domain/recommend"
	"github.com/okian/jobrec/internal/domain/scoring"
	"github.com/okian/jobrec/internal/domain/skillmatch"
	"github.com/okian/jobrec/internal/domain/types"
	"github.com/okian/jobrec/pkg/logger"
	"github.com/okian/jobrec/pkg/metrics"
)

// Default service configuration.
const (
	defaultQueueSize      = 10_000
	defaultDedupeSize     = 50_000
	workerCPUMultiplier   = 4
	scoringCPUMultiplier  = 2
	defaultMatcherSynonym = 0.95
	defaultMatcherFuzzy   = 0.8
	defaultNeutralScore   = 75
	defaultCoverageBonus  = 10
)

// Service implements the API dependencies for the recommendation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog    repository.Store
	deduper    dedupe.Deduper
	ingestQ    queue.Queue
	workerPool *worker.Pool
	matcher    skillmatch.Matcher
	calculator scoring.Calculator
	composer   *recommend.TemplateComposer
	insights   analyzer.Analyzer

	// Configuration
	workerCount    int
	queueSize      int
	dedupeSize     int
	defaultTopK    int
	parallelism    int
	weights        types.Weights
	fuzzyThreshold float64
	synonymScore   float64
	neutralScore   float64
	coverageBonus  float64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the posting ingest queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the fingerprint deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWeights sets the sub-score weight table used for the overall score.
func WithWeights(w types.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithDefaultTopK sets how many recommendations are returned when a request
// does not specify a count. Zero returns the full ranked set.
func WithDefaultTopK(k int) Option {
	return func(s *Service) {
		if k >= 0 {
			s.defaultTopK = k
		}
	}
}

// WithMatcherThresholds tunes the skill matcher's synonym score and fuzzy
// similarity threshold.
func WithMatcherThresholds(synonymScore, fuzzyThreshold float64) Option {
	return func(s *Service) {
		if synonymScore > 0 && synonymScore <= 1 {
			s.synonymScore = synonymScore
		}
		if fuzzyThreshold > 0 && fuzzyThreshold <= 1 {
			s.fuzzyThreshold = fuzzyThreshold
		}
	}
}

// WithScoringRubric tunes the neutral score and coverage bonus.
func WithScoringRubric(neutralScore, coverageBonus float64) Option {
	return func(s *Service) {
		if neutralScore >= 0 {
			s.neutralScore = neutralScore
		}
		if coverageBonus >= 0 {
			s.coverageBonus = coverageBonus
		}
	}
}

// WithScoreParallelism bounds how many jobs are scored concurrently per
// recommendation request.
func WithScoreParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    runtime.NumCPU() * workerCPUMultiplier,
		queueSize:      defaultQueueSize,
		dedupeSize:     defaultDedupeSize,
		parallelism:    runtime.NumCPU() * scoringCPUMultiplier,
		weights:        types.DefaultWeights(),
		fuzzyThreshold: defaultMatcherFuzzy,
		synonymScore:   defaultMatcherSynonym,
		neutralScore:   defaultNeutralScore,
		coverageBonus:  defaultCoverageBonus,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components. It is the fail-fast
// point for configuration invariants: an invalid weight table aborts startup
// instead of skewing every score at runtime.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	s.matcher = skillmatch.NewInMemoryMatcher(
		skillmatch.WithSynonymScore(s.synonymScore),
		skillmatch.WithFuzzyThreshold(s.fuzzyThreshold),
	)
	s.calculator = scoring.NewRubricCalculator(
		scoring.WithNeutralScore(s.neutralScore),
		scoring.WithCoverageBonus(s.coverageBonus),
	)

	composer, err := recommend.New(
		recommend.WithWeights(s.weights),
		recommend.WithMatcher(s.matcher),
	)
	if err != nil {
		return fmt.Errorf("build composer: %w", err)
	}
	s.composer = composer
	s.insights = analyzer.NewInMemoryAnalyzer()

	s.catalog = repository.NewTreapStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.ingestQ = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
		queue.WithBufferSize(s.queueSize),
	)

	s.workerPool = worker.NewPool(s.workerCount, s.ingestQ, s.catalog, s.deduper)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping recommendation service...")

	if s.workerPool != nil {
		// Shutdown closes the queue and waits for the workers to drain it.
		_ = s.workerPool.Shutdown(ctx)
	}

	if s.catalog != nil {
		_ = s.catalog.Close()
	}

	s.started = false
	s.logger.Info(ctx, "recommendation service stopped")
}

// SubmitJob queues one posting for asynchronous ingestion into the catalog.
// Returns queue.ErrQueueFull under backpressure so the HTTP layer can reply
// with a retryable status.
func (s *Service) SubmitJob(ctx context.Context, job model.JobPosting) error {
	if err := s.ingestQ.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("enqueue posting: %w", err)
	}
	s.logger.Debug(ctx, "posting queued",
		logger.String("title", job.Title),
		logger.String("company", job.Company),
	)
	return nil
}

// Job returns one catalog posting by ID.
func (s *Service) Job(ctx context.Context, id string) (model.JobPosting, error) {
	return s.catalog.Get(ctx, id)
}

// RecentJobs returns up to n catalog postings, newest first.
func (s *Service) RecentJobs(ctx context.Context, n int) ([]model.JobPosting, error) {
	return s.catalog.Recent(ctx, n)
}

// Recommend scores every candidate posting against the profile and returns
// the ranked top-K. A nil or empty candidate slice means "score the whole
// catalog". Jobs are scored concurrently; the components are stateless over
// read-only tables, so no locking is needed beyond the errgroup itself.
func (s *Service) Recommend(ctx context.Context, profile model.UserProfile, jobs []model.JobPosting, topK int) ([]types.Recommendation, error) {
	start := time.Now()
	metrics.RecordRecommendationRequest()

	if len(jobs) == 0 {
		var err error
		jobs, err = s.catalog.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}
	if len(jobs) == 0 {
		return []types.Recommendation{}, nil
	}

	if topK <= 0 {
		topK = s.defaultTopK
	}

	recs := make([]types.Recommendation, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, job := range jobs {
		g.Go(func() error {
			rec, err := s.scoreOne(gctx, profile, job)
			if err != nil {
				return err
			}
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := recommend.Rank(recs, topK)

	metrics.RecordJobsScored(len(jobs))
	metrics.RecordRecommendationLatency(float64(time.Since(start).Milliseconds()))
	s.logger.Debug(ctx, "recommendation request served",
		logger.Int("candidates", len(jobs)),
		logger.Int("returned", len(ranked)),
		logger.Duration("elapsed", time.Since(start)),
	)

	return ranked, nil
}

// scoreOne runs a single posting through the analyze -> score -> compose
// pipeline. Only context cancellation can fail it; malformed posting fields
// degrade to neutral scores inside the calculator.
func (s *Service) scoreOne(ctx context.Context, profile model.UserProfile, job model.JobPosting) (types.Recommendation, error) {
	analysis, err := s.matcher.Analyze(ctx, profile.Skills, job.RequiredSkills)
	if err != nil {
		return types.Recommendation{}, fmt.Errorf("analyze skills for %q: %w", job.Title, err)
	}

	scores, err := s.calculator.Score(ctx, profile, job, analysis)
	if err != nil {
		return types.Recommendation{}, fmt.Errorf("score %q: %w", job.Title, err)
	}

	rec, err := s.composer.Compose(ctx, profile, job, analysis, scores)
	if err != nil {
		return types.Recommendation{}, fmt.Errorf("compose %q: %w", job.Title, err)
	}
	return rec, nil
}

// Insights assembles market context for one catalog posting: company and
// sector insight plus the salary comparison at the given experience level.
func (s *Service) Insights(ctx context.Context, jobID string, level model.ExperienceLevel) (analyzer.JobInsights, analyzer.SalaryComparison, error) {
	job, err := s.catalog.Get(ctx, jobID)
	if err != nil {
		return analyzer.JobInsights{}, analyzer.SalaryComparison{}, err
	}

	insights, err := s.insights.AnalyzeJob(ctx, job)
	if err != nil {
		return analyzer.JobInsights{}, analyzer.SalaryComparison{}, err
	}
	return insights, s.insights.CompareSalary(job, level), nil
}

// MarketReport renders a full recommendation run into a market report.
func (s *Service) MarketReport(ctx context.Context, profile model.UserProfile, recs []types.Recommendation) (analyzer.MarketReport, error) {
	return s.insights.BuildReport(ctx, profile, recs)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		ctx := context.Background()
		queueLen := s.ingestQ.Len(ctx)
		catalog := s.catalog.Stats(ctx)

		stats["queueLength"] = queueLen
		stats["totalJobs"] = catalog.Total
		stats["jobsBySource"] = catalog.BySource
		stats["jobsByLevel"] = catalog.ByLevel
		if !catalog.NewestPosted.IsZero() {
			stats["newestPosted"] = catalog.NewestPosted
		}

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateCatalogSize(catalog.Total)
		metrics.UpdateWorkerActiveCount(s.workerCount)
		metrics.UpdateDedupeSize(s.deduper.Size())
	}

	return stats
}

// CatalogCount returns the number of postings in the catalog.
func (s *Service) CatalogCount(ctx context.Context) int {
	return s.catalog.Count(ctx)
}

// DedupeSize returns the number of fingerprints tracked by the deduper.
func (s *Service) DedupeSize() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
