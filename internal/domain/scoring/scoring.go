// Package scoring computes the six compatibility sub-scores for one
// (profile, job) pair.
package scoring

import (
	"context"
	"strings"

	"github.com/okian/jobrec/internal/domain/model"
	"github.com/okian/jobrec/internal/domain/types"
)

// Default rubric constants. All sub-scores live on a 0..100 scale.
const (
	maxScore             = 100
	defaultNeutralScore  = 75
	defaultCoverageBonus = 10
	fullRoleScore        = 100
	partialRoleScore     = 80
)

// Calculator produces a per-job score breakdown. Implementations must be
// safe for concurrent use: one calculator is shared across scoring workers.
type Calculator interface {
	// Score computes all sub-scores, honoring ctx for cancellation.
	// Malformed optional job fields never fail the call; they degrade to
	// the neutral score.
	Score(ctx context.Context, profile model.UserProfile, job model.JobPosting, analysis types.SkillAnalysis) (types.ScoreBreakdown, error)
}

// RubricCalculator implements Calculator with fixed heuristic tables built
// at construction and never mutated afterwards.
type RubricCalculator struct {
	neutralScore  float64
	coverageBonus float64
	growth        growthTiers
	levelKeywords map[model.ExperienceLevel][]string
}

// NewRubricCalculator creates a calculator with the production rubric,
// adjusted by options.
func NewRubricCalculator(opts ...Option) *RubricCalculator {
	c := &RubricCalculator{
		neutralScore:  defaultNeutralScore,
		coverageBonus: defaultCoverageBonus,
		growth:        defaultGrowthTiers(),
		levelKeywords: defaultLevelKeywords(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Score implements Calculator. The overall field is left zero; combining
// sub-scores into an overall score is the composer's concern.
func (c *RubricCalculator) Score(ctx context.Context, profile model.UserProfile, job model.JobPosting, analysis types.SkillAnalysis) (types.ScoreBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return types.ScoreBreakdown{}, err
	}

	return types.ScoreBreakdown{
		Skill:      c.skillScore(analysis),
		Role:       c.roleScore(profile, job),
		Experience: c.experienceScore(profile, job),
		Growth:     c.growthScore(job),
		Location:   c.locationScore(profile, job),
		Salary:     c.salaryScore(profile, job),
	}, nil
}

// skillScore scales the analysis to 0..100 and rewards coverage.
func (c *RubricCalculator) skillScore(analysis types.SkillAnalysis) float64 {
	score := analysis.OverallScore*100 + (analysis.Coverage/100)*c.coverageBonus
	if score > maxScore {
		return maxScore
	}
	return score
}

// roleScore averages per-role title relevance: substring containment is a
// full hit, otherwise word overlap contributes proportionally.
func (c *RubricCalculator) roleScore(profile model.UserProfile, job model.JobPosting) float64 {
	title := strings.ToLower(job.Title)
	titleWords := fieldSet(title)

	var score, maxTotal float64
	for _, role := range profile.PreferredRoles {
		role = strings.ToLower(role)
		maxTotal += fullRoleScore

		if strings.Contains(title, role) {
			score += fullRoleScore
			continue
		}
		roleWords := strings.Fields(role)
		overlap := 0
		for _, w := range roleWords {
			if _, ok := titleWords[w]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			score += float64(overlap) / float64(len(roleWords)) * partialRoleScore
		}
	}

	if maxTotal == 0 {
		return 0
	}
	return score / maxTotal * 100
}

// fieldSet splits on whitespace into a membership set.
func fieldSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
