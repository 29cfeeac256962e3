// Package worker drains the ingest queue into the job catalog: postings get
// an ID when missing, duplicates are suppressed by fingerprint, skills are
// normalized and the posted date is resolved before the catalog upsert.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/jobrec/internal/adapters/mq/queue"
	"github.com/okian/jobrec/internal/domain/model"
	"github.com/okian/jobrec/internal/domain/skillmatch"
	"github.com/okian/jobrec/pkg/logger"
	"github.com/okian/jobrec/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	metricsUpdateInterval   = 5 * time.Second
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job is what workers read off the queue.
type Job = queue.Job

// Catalog persists ingested postings.
type Catalog interface {
	// Upsert stores the posting and reports whether it was newly inserted.
	Upsert(ctx context.Context, job model.JobPosting) (bool, error)
}

// Deduper suppresses postings whose fingerprint was already ingested.
type Deduper interface {
	SeenAndRecord(ctx context.Context, fp string) bool
	Unrecord(ctx context.Context, fp string)
}

// Queue defines how workers receive postings.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes queued postings into the catalog.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for ingesting postings.
type InMemoryWorker struct {
	queue   Queue
	catalog Catalog
	deduper Deduper
	name    string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, catalog Catalog, deduper Deduper, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		catalog:  catalog,
		deduper:  deduper,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Queue closed, worker should stop.
				return
			}

			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error ingesting posting", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.signalStop()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// signalStop asks the worker loop to exit. Safe to call more than once.
func (w *InMemoryWorker) signalStop() {
	w.stopOnce.Do(func() {
		close(w.shutdown)
	})
}

// processJob runs one posting through the ingest pipeline.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordIngestLatency(float64(time.Since(start).Milliseconds()))
	}()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	fp := job.Fingerprint()
	if w.deduper != nil && w.deduper.SeenAndRecord(ctx, fp) {
		metrics.RecordDedupeHit()
		w.logger.Debug(ctx, "duplicate posting dropped",
			logger.String("jobID", job.ID),
			logger.String("fingerprint", fp),
		)
		return nil
	}

	job.RequiredSkills = normalizeSkills(job.RequiredSkills)

	// Postings without a usable posted date sort by ingestion time.
	if _, ok := job.PostedTime(); !ok {
		job.PostedAt = time.Now().UTC().Format(time.RFC3339)
	}

	inserted, err := w.catalog.Upsert(ctx, job)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "catalog_error")
		if w.deduper != nil {
			// Let a resubmission retry the posting.
			w.deduper.Unrecord(ctx, fp)
		}
		w.logger.Error(ctx, "catalog upsert failed",
			logger.String("jobID", job.ID),
			logger.Error(err),
		)
		return fmt.Errorf("catalog upsert for %s: %w", job.ID, err)
	}

	if inserted {
		metrics.RecordJobIngested()
	} else {
		metrics.RecordJobRefreshed()
	}

	return nil
}

// normalizeSkills canonicalizes each required skill and drops empties.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if n := skillmatch.Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Pool manages multiple workers draining the same queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	catalog Catalog
	deduper Deduper

	// Shutdown control
	shutdown chan struct{}
	stopOnce sync.Once

	// Logging
	logger logger.Logger
}

// NewPool creates a worker pool. A workerCount below 1 selects a default
// derived from the CPU count.
func NewPool(workerCount int, q Queue, catalog Catalog, deduper Deduper) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    q,
		catalog:  catalog,
		deduper:  deduper,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			q,
			catalog,
			deduper,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}

	go p.runMetricsUpdater(ctx)
}

// runMetricsUpdater periodically publishes queue depth and dedupe size.
func (p *Pool) runMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.updateMetrics(ctx)
		}
	}
}

// updateMetrics publishes gauges that need polling.
func (p *Pool) updateMetrics(ctx context.Context) {
	if lener, ok := p.queue.(interface{ Len(ctx context.Context) int }); ok {
		metrics.UpdateQueueSize(lener.Len(ctx))
	}
	if sizer, ok := p.deduper.(interface{ Size() int64 }); ok {
		metrics.UpdateDedupeSize(sizer.Size())
	}
}

// Stop stops all workers without draining the queue.
func (p *Pool) Stop() {
	p.signalStop()
	for _, w := range p.workers {
		w.signalStop()
	}

	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue, then waits for the workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	p.signalStop()

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}

// signalStop stops the metrics updater. Safe to call more than once.
func (p *Pool) signalStop() {
	p.stopOnce.Do(func() {
		close(p.shutdown)
	})
}
