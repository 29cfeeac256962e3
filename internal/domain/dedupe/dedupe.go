// Package dedupe suppresses duplicate job postings during ingestion.
// Postings are tracked by fingerprint (title|company|location) so the same
// opening resubmitted by another source or with a fresh ID is dropped.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// defaultMaxSize bounds the fingerprint set. At roughly 100 bytes per
// fingerprint this keeps the deduper around 5MB.
const defaultMaxSize = 50000

// Deduper records seen posting fingerprints for at-most-once ingestion.
type Deduper interface {
	// SeenAndRecord atomically checks whether fp was seen and records it if
	// not. Returns true when fp was already seen, false when newly recorded.
	SeenAndRecord(ctx context.Context, fp string) bool

	// Unrecord removes a fingerprint, allowing the posting to be retried.
	// Used when a posting was recorded but failed to reach the catalog
	// (e.g. queue backpressure).
	Unrecord(ctx context.Context, fp string)

	Size() int64
}

// entry is one fingerprint in the recency list. Entries are doubly linked so
// both eviction at the tail and removal from the middle are O(1).
type entry struct {
	fp   string
	prev *entry
	next *entry
}

func (e *entry) reset() {
	e.fp = ""
	e.prev = nil
	e.next = nil
}

// inMemoryDeduper tracks fingerprints in a map plus a recency list.
// Bounded mode (maxSize > 0) evicts the oldest fingerprint when full and
// recycles entries through a sync.Pool. Unbounded mode (maxSize <= 0) is a
// plain map with no eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*entry
	newest  *entry
	oldest  *entry
	maxSize int
	size    atomic.Int64
	pool    sync.Pool
}

// NewInMemoryDeduper builds a deduper. Without options it is bounded at
// defaultMaxSize.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]*entry)
	if d.maxSize > 0 {
		d.pool = sync.Pool{
			New: func() interface{} {
				return &entry{}
			},
		}
	}
	return d
}

// SeenAndRecord atomically checks whether fp was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, fp string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[fp]; exists {
		return true
	}

	if d.maxSize > 0 {
		if len(d.seen) >= d.maxSize {
			d.evictOldest()
		}

		e := d.pool.Get().(*entry)
		e.fp = fp
		e.next = d.newest
		if d.newest != nil {
			d.newest.prev = e
		}
		d.newest = e
		if d.oldest == nil {
			d.oldest = e
		}
		d.seen[fp] = e
	} else {
		d.seen[fp] = nil
	}
	d.size.Add(1)
	return false
}

// Unrecord removes a fingerprint so the posting can be retried.
func (d *inMemoryDeduper) Unrecord(_ context.Context, fp string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, exists := d.seen[fp]
	if !exists {
		return
	}
	delete(d.seen, fp)

	if d.maxSize > 0 {
		d.unlink(e)
		e.reset()
		d.pool.Put(e)
	}
	d.size.Add(-1)
}

// unlink detaches an entry from the recency list. Caller holds d.mu.
func (d *inMemoryDeduper) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		d.newest = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		d.oldest = e.prev
	}
}

// evictOldest drops the least recently recorded fingerprint. Caller holds
// d.mu.
func (d *inMemoryDeduper) evictOldest() {
	victim := d.oldest
	if victim == nil {
		return
	}
	delete(d.seen, victim.fp)
	d.unlink(victim)
	victim.reset()
	d.pool.Put(victim)
	d.size.Add(-1)
}

// Size returns the current number of tracked fingerprints.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
