package queue

import "errors"

// Sentinel errors surfaced to submitters.
var (
	// ErrQueueFull signals backpressure: the posting was rejected because
	// the queue is at capacity.
	ErrQueueFull = errors.New("queue full")

	// ErrQueueClosed signals the queue no longer accepts postings.
	ErrQueueClosed = errors.New("queue closed")
)
