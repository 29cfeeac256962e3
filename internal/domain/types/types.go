// Package types contains common types used across the application
package types

import (
	"fmt"
	"math"

	"github.com/okian/jobrec/internal/domain/model"
)

// MatchType tells how a user skill was matched to a job skill.
type MatchType string

// Match types, strongest first.
const (
	MatchExact   MatchType = "exact"
	MatchSynonym MatchType = "synonym"
	MatchFuzzy   MatchType = "fuzzy"
)

// SkillMatch is one matched (user skill, job skill) pair.
type SkillMatch struct {
	UserSkill string    `json:"user_skill"`
	JobSkill  string    `json:"job_skill"`
	Score     float64   `json:"score"`
	Type      MatchType `json:"match_type"`
}

// SkillAnalysis aggregates all matches for one (profile, job) pair.
// OverallScore is in [0,1]; Coverage is a percentage in [0,100].
type SkillAnalysis struct {
	Matches      []SkillMatch `json:"matches"`
	Missing      []string     `json:"missing_skills"`
	Additional   []string     `json:"additional_skills"`
	OverallScore float64      `json:"overall_match_score"`
	Coverage     float64      `json:"coverage_percentage"`
}

// ScoreBreakdown holds the six sub-scores and the weighted overall score,
// all on a 0..100 scale.
type ScoreBreakdown struct {
	Skill      float64 `json:"skill_score"`
	Role       float64 `json:"role_relevance_score"`
	Experience float64 `json:"experience_match_score"`
	Growth     float64 `json:"growth_score"`
	Location   float64 `json:"location_score"`
	Salary     float64 `json:"salary_score"`
	Overall    float64 `json:"overall_score"`
}

// weightSumTolerance absorbs float drift when validating weight tables.
const weightSumTolerance = 1e-9

// Weights maps each sub-score to its share of the overall score.
// A valid table is non-negative and sums to exactly 1.0.
type Weights struct {
	Skill      float64 `json:"skill_match" koanf:"skill_match"`
	Role       float64 `json:"role_relevance" koanf:"role_relevance"`
	Experience float64 `json:"experience_match" koanf:"experience_match"`
	Growth     float64 `json:"growth_potential" koanf:"growth_potential"`
	Location   float64 `json:"location_match" koanf:"location_match"`
	Salary     float64 `json:"salary_match" koanf:"salary_match"`
}

// DefaultWeights returns the hand-tuned production weight table.
func DefaultWeights() Weights {
	return Weights{
		Skill:      0.35,
		Role:       0.25,
		Experience: 0.15,
		Growth:     0.15,
		Location:   0.05,
		Salary:     0.05,
	}
}

// Validate rejects weight tables that cannot produce a 0..100 overall score.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"skill_match":      w.Skill,
		"role_relevance":   w.Role,
		"experience_match": w.Experience,
		"growth_potential": w.Growth,
		"location_match":   w.Location,
		"salary_match":     w.Salary,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidWeights, name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: sum %v, want 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// Sum returns the total of all six weights.
func (w Weights) Sum() float64 {
	return w.Skill + w.Role + w.Experience + w.Growth + w.Location + w.Salary
}

// Apply combines a breakdown's sub-scores into the weighted overall score.
func (w Weights) Apply(b ScoreBreakdown) float64 {
	return b.Skill*w.Skill +
		b.Role*w.Role +
		b.Experience*w.Experience +
		b.Growth*w.Growth +
		b.Location*w.Location +
		b.Salary*w.Salary
}

// Recommendation is the finished product for one job: the posting, its
// scores, the skill analysis, and generated guidance. Immutable once
// produced; its only lifecycle is construction, ranking, serialization.
type Recommendation struct {
	Rank          int                 `json:"rank"`
	Job           model.JobPosting    `json:"job"`
	Scores        ScoreBreakdown      `json:"score"`
	Analysis      SkillAnalysis       `json:"skill_analysis"`
	Explanation   string              `json:"explanation"`
	Pros          []string            `json:"pros"`
	Cons          []string            `json:"cons"`
	MissingSkills []string            `json:"skill_gaps"`
	LearningPaths map[string][]string `json:"learning_suggestions"`
}
