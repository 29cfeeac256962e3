// Package skillmatch compares user skills against job requirements,
// tolerant of naming variation across postings.
package skillmatch

import (
	"context"
	"fmt"

	"github.com/okian/jobrec/internal/domain/types"
)

// Default matching thresholds.
const (
	exactScore            = 1.0
	defaultSynonymScore   = 0.95
	defaultFuzzyThreshold = 0.8
)

// Matcher analyzes skill overlap between a profile and one job posting.
type Matcher interface {
	// Analyze compares the two skill sets, honoring ctx for cancellation.
	Analyze(ctx context.Context, userSkills, jobSkills []string) (types.SkillAnalysis, error)
	// LearningPaths suggests resources for each missing skill, keyed by the
	// skill string as supplied.
	LearningPaths(missing []string) map[string][]string
}

// InMemoryMatcher implements Matcher over static in-memory tables built
// once at construction and never mutated; Analyze is safe for concurrent
// use without locking.
type InMemoryMatcher struct {
	synonyms       map[string]map[string]struct{}
	extraGroups    map[string][]string
	learningPaths  map[string][]string
	synonymScore   float64
	fuzzyThreshold float64
}

// NewInMemoryMatcher creates a matcher with the built-in synonym, category
// and learning-path tables, adjusted by options.
func NewInMemoryMatcher(opts ...Option) *InMemoryMatcher {
	m := &InMemoryMatcher{
		synonymScore:   defaultSynonymScore,
		fuzzyThreshold: defaultFuzzyThreshold,
		learningPaths:  make(map[string][]string, len(learningPaths)),
	}
	for skill, path := range learningPaths {
		m.learningPaths[skill] = path
	}

	for _, opt := range opts {
		opt(m)
	}

	groups := synonymGroups
	if len(m.extraGroups) > 0 {
		groups = make(map[string][]string, len(synonymGroups)+len(m.extraGroups))
		for k, v := range synonymGroups {
			groups[k] = v
		}
		for k, v := range m.extraGroups {
			groups[k] = append(append([]string(nil), groups[k]...), v...)
		}
	}
	m.synonyms = buildSynonymIndex(groups)
	return m
}

// matchKey identifies one normalized (user skill, job skill) pair.
type matchKey struct {
	user string
	job  string
}

// Analyze implements Matcher.
//
// Per pair the strongest applicable rule wins: exact normalized equality
// (1.0), synonym-table membership (0.95 by default), then fuzzy similarity
// at or above the threshold (score = ratio). Pairs below the threshold are
// not recorded. Overall score is the sum of match scores over the number of
// job skills, capped at 1.0; coverage is the share of distinct job skills
// matched. Both default to full marks when the job requires no skills.
func (m *InMemoryMatcher) Analyze(ctx context.Context, userSkills, jobSkills []string) (types.SkillAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return types.SkillAnalysis{}, err
	}

	best := make(map[matchKey]types.SkillMatch)
	order := make([]matchKey, 0)

	for _, us := range userSkills {
		nu := Normalize(us)
		if nu == "" {
			continue
		}
		for _, js := range jobSkills {
			nj := Normalize(js)
			if nj == "" {
				continue
			}
			score, matchType, ok := m.matchPair(nu, nj)
			if !ok {
				continue
			}
			k := matchKey{user: nu, job: nj}
			prev, seen := best[k]
			if !seen {
				order = append(order, k)
			}
			if !seen || score > prev.Score {
				best[k] = types.SkillMatch{UserSkill: us, JobSkill: js, Score: score, Type: matchType}
			}
		}
	}

	matches := make([]types.SkillMatch, 0, len(order))
	matchedJob := make(map[string]struct{}, len(order))
	matchedUser := make(map[string]struct{}, len(order))
	var scoreSum float64
	for _, k := range order {
		rec := best[k]
		matches = append(matches, rec)
		matchedJob[k.job] = struct{}{}
		matchedUser[k.user] = struct{}{}
		scoreSum += rec.Score
	}

	missing := make([]string, 0)
	for _, js := range jobSkills {
		if _, ok := matchedJob[Normalize(js)]; !ok {
			missing = append(missing, js)
		}
	}
	additional := make([]string, 0)
	for _, us := range userSkills {
		if _, ok := matchedUser[Normalize(us)]; !ok {
			additional = append(additional, us)
		}
	}

	overall, coverage := 1.0, 100.0
	if len(jobSkills) > 0 {
		overall = scoreSum / float64(len(jobSkills))
		if overall > 1.0 {
			overall = 1.0
		}
		coverage = float64(len(matchedJob)) / float64(len(jobSkills)) * 100
	}

	return types.SkillAnalysis{
		Matches:      matches,
		Missing:      missing,
		Additional:   additional,
		OverallScore: overall,
		Coverage:     coverage,
	}, nil
}

// matchPair applies the match rules to one normalized pair.
func (m *InMemoryMatcher) matchPair(nu, nj string) (float64, types.MatchType, bool) {
	if nu == nj {
		return exactScore, types.MatchExact, true
	}
	if m.isSynonym(nu, nj) {
		return m.synonymScore, types.MatchSynonym, true
	}
	if r := Ratio(nu, nj); r >= m.fuzzyThreshold {
		return r, types.MatchFuzzy, true
	}
	return 0, "", false
}

// isSynonym checks membership in either direction; the index is symmetric
// but the double lookup keeps custom one-way groups working too.
func (m *InMemoryMatcher) isSynonym(a, b string) bool {
	if _, ok := m.synonyms[a][b]; ok {
		return true
	}
	_, ok := m.synonyms[b][a]
	return ok
}

// LearningPaths implements Matcher. Skills without a curated entry get a
// generic three-step template parameterized by the skill name.
func (m *InMemoryMatcher) LearningPaths(missing []string) map[string][]string {
	suggestions := make(map[string][]string, len(missing))
	for _, skill := range missing {
		if path, ok := m.learningPaths[Normalize(skill)]; ok {
			suggestions[skill] = append([]string(nil), path...)
			continue
		}
		suggestions[skill] = []string{
			fmt.Sprintf("Take an online course in %s", skill),
			fmt.Sprintf("Practice %s through projects", skill),
			fmt.Sprintf("Read documentation and tutorials about %s", skill),
		}
	}
	return suggestions
}

// Categorize returns the category a skill belongs to, if any.
func Categorize(skill string) (string, bool) {
	n := Normalize(skill)
	for category, members := range skillCategories {
		for _, member := range members {
			if n == member {
				return category, true
			}
		}
	}
	return "", false
}

// Categories returns the category table keys with their member skills.
// The result is a copy; mutating it does not affect matching.
func Categories() map[string][]string {
	out := make(map[string][]string, len(skillCategories))
	for category, members := range skillCategories {
		out[category] = append([]string(nil), members...)
	}
	return out
}
