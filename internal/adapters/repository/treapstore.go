package repository

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/jobrec/internal/domain/model"
	"github.com/okian/jobrec/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: posted time DESC, then job ID ASC (deterministic). "Less" in the
// BST comparator means "ranks earlier", so an in-order traversal yields the
// catalog from newest posting to oldest.

// Default store configuration.
const (
	defaultSnapshotInterval      = 1 * time.Second
	defaultRecentCacheSize       = 500
	defaultMetricsUpdateInterval = 5 * time.Second
)

// storedJob couples a posting with its ordering key. The key is frozen at
// upsert time so the treap node can be located again on replacement even if
// the posting's date fields are edited.
type storedJob struct {
	job    model.JobPosting
	posted int64
}

// Snapshot is an immutable view published periodically for lock-free reads.
type Snapshot struct {
	// RecentCache holds the newest postings, newest first.
	RecentCache []model.JobPosting

	// Stats aggregates catalog composition.
	Stats Stats
}

// treap node
type node struct {
	id     string
	posted int64
	prio   uint64
	left   *node
	right  *node
	size   int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (aPosted, aID) ranks earlier than (bPosted, bID):
// newer postings first, ties broken by ID ascending.
func less(aPosted int64, aID string, bPosted int64, bID string) bool {
	if aPosted != bPosted {
		return aPosted > bPosted
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// postedToPriority keeps newer postings near the treap root, which is where
// Recent queries spend their time.
func postedToPriority(posted int64) uint64 {
	const offset = uint64(1) << 63
	return uint64(posted) + offset
}

func insert(n *node, id string, posted int64) *node {
	if n == nil {
		return &node{id: id, posted: posted, prio: postedToPriority(posted), size: 1}
	}
	if less(posted, id, n.posted, n.id) {
		n.left = insert(n.left, id, posted)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, posted)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, posted int64) *node {
	if n == nil {
		return nil
	}
	if posted == n.posted && id == n.id {
		// Merge children by rotating the higher priority up until leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, posted)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, posted)
		}
	} else if less(posted, id, n.posted, n.id) {
		n.left = deleteNode(n.left, id, posted)
	} else {
		n.right = deleteNode(n.right, id, posted)
	}
	fix(n)
	return n
}

// collectRecent appends up to limit postings in catalog order (newest first).
func collectRecent(n *node, limit int, byID map[string]storedJob, out *[]model.JobPosting) {
	if n == nil || len(*out) >= limit {
		return
	}

	collectRecent(n.left, limit, byID, out)

	if len(*out) < limit {
		if rec, exists := byID[n.id]; exists {
			*out = append(*out, rec.job)
		}
	}

	if len(*out) < limit {
		collectRecent(n.right, limit, byID, out)
	}
}

// collectAll appends every posting in catalog order (newest first).
func collectAll(n *node, byID map[string]storedJob, out *[]model.JobPosting) {
	if n == nil {
		return
	}
	collectAll(n.left, byID, out)
	if rec, ok := byID[n.id]; ok {
		*out = append(*out, rec.job)
	}
	collectAll(n.right, byID, out)
}

// TreapStore is the in-memory catalog implementation.
type TreapStore struct {
	mu                    sync.RWMutex
	root                  *node
	byID                  map[string]storedJob
	snapshotInterval      time.Duration
	recentCacheSize       int
	metricsUpdateInterval time.Duration

	// snapshot is the last published immutable view.
	snapshot atomic.Pointer[Snapshot]

	// Background goroutine management.
	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		snapshotInterval:      defaultSnapshotInterval,
		recentCacheSize:       defaultRecentCacheSize,
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		byID:                  make(map[string]storedJob),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startPeriodicSnapshots(ctx)
	s.startMetricsUpdater(ctx)

	return s
}

// startPeriodicSnapshots publishes snapshots at the configured interval.
func (s *TreapStore) startPeriodicSnapshots(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.snapshotInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.publishSnapshot()
			}
		}
	}()
}

// publishSnapshot rebuilds and publishes a new snapshot.
func (s *TreapStore) publishSnapshot() {
	start := time.Now()
	s.mu.RLock()
	s.publishSnapshotLocked()
	s.mu.RUnlock()

	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordCatalogSnapshotRebuildDuration(ms)
	metrics.UpdateCatalogSnapshotLastUnix(float64(time.Now().Unix()))
	metrics.IncrementCatalogSnapshotCount()
}

// publishSnapshotLocked rebuilds the snapshot. Caller holds at least a read
// lock.
func (s *TreapStore) publishSnapshotLocked() {
	recent := make([]model.JobPosting, 0, s.recentCacheSize)
	collectRecent(s.root, s.recentCacheSize, s.byID, &recent)

	stats := Stats{
		Total:       len(s.byID),
		BySource:    make(map[string]int),
		ByLevel:     make(map[string]int),
		GeneratedAt: time.Now(),
	}
	var newest int64 = math.MinInt64
	for _, rec := range s.byID {
		if rec.job.Source != "" {
			stats.BySource[rec.job.Source]++
		}
		if rec.job.ExperienceLevel != "" {
			stats.ByLevel[rec.job.ExperienceLevel]++
		}
		if rec.posted > newest {
			newest = rec.posted
		}
	}
	if len(s.byID) > 0 {
		stats.NewestPosted = time.Unix(newest, 0).UTC()
	}

	s.snapshot.Store(&Snapshot{
		RecentCache: recent,
		Stats:       stats,
	})
}

// Close gracefully shuts down the background goroutines.
func (s *TreapStore) Close() error {
	select {
	case <-s.stopChan:
		// Already closed.
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// Upsert implements Store.Upsert with O(log n) expected time.
func (s *TreapStore) Upsert(ctx context.Context, job model.JobPosting) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogUpsertLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := ctx.Err(); err != nil {
		return false, err
	}

	posted := postedKey(job)

	s.mu.Lock()
	old, exists := s.byID[job.ID]
	if exists {
		s.root = deleteNode(s.root, job.ID, old.posted)
	}
	s.byID[job.ID] = storedJob{job: job, posted: posted}
	s.root = insert(s.root, job.ID, posted)
	count := len(s.byID)
	s.mu.Unlock()

	if !exists {
		metrics.UpdateCatalogSize(count)
	}

	return !exists, nil
}

// postedKey resolves the catalog ordering key for a posting. Postings
// without a parseable date sort by arrival.
func postedKey(job model.JobPosting) int64 {
	if ts, ok := job.PostedTime(); ok {
		return ts.Unix()
	}
	return time.Now().Unix()
}

// Get returns the posting with the given ID in O(1).
func (s *TreapStore) Get(ctx context.Context, id string) (model.JobPosting, error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.JobPosting{}, ErrNotFound
	}
	return rec.job, nil
}

// Recent returns up to n postings, newest first.
func (s *TreapStore) Recent(ctx context.Context, n int) ([]model.JobPosting, error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.JobPosting, 0, n)
	collectRecent(s.root, n, s.byID, &out)
	return out, nil
}

// All returns every posting, newest first.
func (s *TreapStore) All(ctx context.Context) ([]model.JobPosting, error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.JobPosting, 0, len(s.byID))
	collectAll(s.root, s.byID, &out)
	return out, nil
}

// Count returns the number of postings in the catalog.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Stats returns the latest published statistics, building one synchronously
// when nothing has been published yet.
func (s *TreapStore) Stats(ctx context.Context) Stats {
	if snap := s.snapshot.Load(); snap != nil {
		return snap.Stats
	}

	s.mu.RLock()
	s.publishSnapshotLocked()
	s.mu.RUnlock()
	return s.snapshot.Load().Stats
}

// startMetricsUpdater updates catalog metrics in the background.
func (s *TreapStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

// updateMetrics publishes catalog gauges from the latest snapshot.
func (s *TreapStore) updateMetrics() {
	s.mu.RLock()
	count := len(s.byID)
	s.mu.RUnlock()

	metrics.UpdateCatalogSize(count)

	if snap := s.snapshot.Load(); snap != nil {
		for source, n := range snap.Stats.BySource {
			metrics.UpdateCatalogSourceCount(source, n)
		}
	}
}
