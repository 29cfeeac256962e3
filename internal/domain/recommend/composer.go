// Package recommend turns score breakdowns into ranked, explained
// recommendations.
package recommend

import (
	"context"
	"fmt"

	"github.com/okian/jobrec/internal/domain/model"
	"github.com/okian/jobrec/internal/domain/skillmatch"
	"github.com/okian/jobrec/internal/domain/types"
)

// Composer assembles the final recommendation for one scored job.
type Composer interface {
	// Compose combines sub-scores into the weighted overall score and
	// generates the explanation, pros/cons and learning suggestions.
	Compose(ctx context.Context, profile model.UserProfile, job model.JobPosting, analysis types.SkillAnalysis, scores types.ScoreBreakdown) (types.Recommendation, error)
}

// TemplateComposer implements Composer with threshold-gated template
// fragments. Safe for concurrent use.
type TemplateComposer struct {
	weights      types.Weights
	matcher      skillmatch.Matcher
	maxNamedGaps int
}

// defaultMaxNamedGaps bounds how many missing skills an explanation names.
const defaultMaxNamedGaps = 3

// New creates a composer. It fails fast when the configured weights are
// invalid; a bad weight table is a deployment bug, not a per-job anomaly.
func New(opts ...Option) (*TemplateComposer, error) {
	c := &TemplateComposer{
		weights:      types.DefaultWeights(),
		maxNamedGaps: defaultMaxNamedGaps,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.weights.Validate(); err != nil {
		return nil, fmt.Errorf("compose weights: %w", err)
	}
	if c.matcher == nil {
		c.matcher = skillmatch.NewInMemoryMatcher()
	}
	return c, nil
}

// Weights returns the weight table the composer ranks with.
func (c *TemplateComposer) Weights() types.Weights {
	return c.weights
}

// Compose implements Composer.
func (c *TemplateComposer) Compose(ctx context.Context, profile model.UserProfile, job model.JobPosting, analysis types.SkillAnalysis, scores types.ScoreBreakdown) (types.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return types.Recommendation{}, err
	}

	scores.Overall = c.weights.Apply(scores)
	pros, cons := c.prosAndCons(job, scores, analysis)

	return types.Recommendation{
		Job:           job,
		Scores:        scores,
		Analysis:      analysis,
		Explanation:   c.explain(job, scores, analysis),
		Pros:          pros,
		Cons:          cons,
		MissingSkills: analysis.Missing,
		LearningPaths: c.matcher.LearningPaths(analysis.Missing),
	}, nil
}

// Pros/cons thresholds. Each rule fires independently.
const (
	prosSkillStrong   = 80
	consSkillWeak     = 50
	prosExtraSkills   = 2
	prosExperienceFit = 85
	consExperienceOff = 50
	prosGrowthHigh    = 80
	consGrowthLow     = 40
	prosLocationGreat = 90
	consLocationPoor  = 40
	prosSalaryGood    = 80
	consSalaryPoor    = 40
)

func (c *TemplateComposer) prosAndCons(job model.JobPosting, scores types.ScoreBreakdown, analysis types.SkillAnalysis) (pros, cons []string) {
	pros = make([]string, 0, 4)
	cons = make([]string, 0, 2)

	if scores.Skill >= prosSkillStrong {
		pros = append(pros, fmt.Sprintf("Strong skill match (%.0f%% coverage)", analysis.Coverage))
	} else if scores.Skill < consSkillWeak {
		cons = append(cons, "Significant skill gaps to address")
	}
	if len(analysis.Additional) > prosExtraSkills {
		pros = append(pros, "You bring additional valuable skills beyond requirements")
	}

	if scores.Experience >= prosExperienceFit {
		pros = append(pros, "Perfect experience level match")
	} else if scores.Experience < consExperienceOff {
		cons = append(cons, "Experience level mismatch")
	}

	if scores.Growth >= prosGrowthHigh {
		pros = append(pros, "High-growth industry/technology")
	} else if scores.Growth < consGrowthLow {
		cons = append(cons, "Limited growth potential in this area")
	}

	if scores.Location >= prosLocationGreat {
		pros = append(pros, "Excellent location match")
	} else if scores.Location < consLocationPoor {
		cons = append(cons, "Location may not be ideal")
	}

	if job.WorkType == string(model.WorkRemote) {
		pros = append(pros, "Remote work opportunity")
	}

	if job.SalaryText != "" {
		if scores.Salary >= prosSalaryGood {
			pros = append(pros, "Competitive salary range")
		} else if scores.Salary < consSalaryPoor {
			cons = append(cons, "Salary may not meet expectations")
		}
	}

	return pros, cons
}
