package dedupe

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize sets how many fingerprints to keep in memory.
// maxSize > 0 bounds the set, evicting the oldest fingerprint when full.
// maxSize <= 0 removes the bound entirely.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}
