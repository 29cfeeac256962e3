package recommend

import (
	"github.com/okian/jobrec/internal/domain/skillmatch"
	"github.com/okian/jobrec/internal/domain/types"
)

// Option applies a configuration option to the TemplateComposer.
type Option func(*TemplateComposer)

// WithWeights sets the sub-score weight table. Validation happens in New.
func WithWeights(w types.Weights) Option {
	return func(c *TemplateComposer) {
		c.weights = w
	}
}

// WithMatcher sets the matcher used for learning-path lookups, so the
// composer shares synonym tables with the analysis stage.
func WithMatcher(m skillmatch.Matcher) Option {
	return func(c *TemplateComposer) {
		if m != nil {
			c.matcher = m
		}
	}
}

// WithMaxNamedGaps caps how many missing skills the explanation names.
func WithMaxNamedGaps(n int) Option {
	return func(c *TemplateComposer) {
		if n > 0 {
			c.maxNamedGaps = n
		}
	}
}
