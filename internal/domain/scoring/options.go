package scoring

import "github.com/okian/jobrec/internal/domain/model"

// Option applies a configuration option to the RubricCalculator.
type Option func(*RubricCalculator)

// WithNeutralScore sets the score used when a job lacks the data for a
// meaningful comparison.
func WithNeutralScore(score float64) Option {
	return func(c *RubricCalculator) {
		if score >= 0 && score <= maxScore {
			c.neutralScore = score
		}
	}
}

// WithCoverageBonus sets the maximum skill-score bonus granted for full
// requirement coverage.
func WithCoverageBonus(bonus float64) Option {
	return func(c *RubricCalculator) {
		if bonus >= 0 {
			c.coverageBonus = bonus
		}
	}
}

// WithGrowthKeywords replaces the market-tier keyword lists. Empty lists
// keep their defaults.
func WithGrowthKeywords(high, medium, declining []string) Option {
	return func(c *RubricCalculator) {
		if len(high) > 0 {
			c.growth.high = high
		}
		if len(medium) > 0 {
			c.growth.medium = medium
		}
		if len(declining) > 0 {
			c.growth.declining = declining
		}
	}
}

// WithLevelKeywords overrides the posting wording recognized for a profile
// experience level.
func WithLevelKeywords(level model.ExperienceLevel, keywords []string) Option {
	return func(c *RubricCalculator) {
		if len(keywords) > 0 {
			c.levelKeywords[level] = keywords
		}
	}
}
