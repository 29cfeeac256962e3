package scoring

import (
	"strings"

	"github.com/okian/jobrec/internal/domain/model"
)

// Experience rubric: exact and keyword matches first, then distance on the
// seniority ladder.
const (
	experienceExact      = 100
	experienceKeyword    = 90
	experienceOverOne    = 85 // one level overqualified, still fine
	experienceUnderOne   = 70 // stretch opportunity
	experienceTwoApart   = 40
	experienceFarApart   = 20
	experienceUnknownJob = 50
)

// defaultLevelKeywords maps each profile level to the wording postings use
// for it. Matched by containment against the job's level text.
func defaultLevelKeywords() map[model.ExperienceLevel][]string {
	return map[model.ExperienceLevel][]string{
		model.LevelEntry:     {"entry", "junior", "associate", "intern", "graduate"},
		model.LevelMid:       {"mid", "intermediate", "experienced", "developer", "analyst"},
		model.LevelSenior:    {"senior", "lead", "principal", "architect", "manager"},
		model.LevelExecutive: {"director", "vp", "chief", "head", "executive"},
	}
}

// experienceScore rates level compatibility. Jobs without a stated level
// get the neutral score; level text that maps onto neither keywords nor the
// ladder scores as unknown rather than erroring.
func (c *RubricCalculator) experienceScore(profile model.UserProfile, job model.JobPosting) float64 {
	jobLevel := strings.ToLower(strings.TrimSpace(job.ExperienceLevel))
	if jobLevel == "" {
		return c.neutralScore
	}

	userLevel := profile.Experience
	if string(userLevel) == jobLevel {
		return experienceExact
	}

	for _, keyword := range c.levelKeywords[userLevel] {
		if strings.Contains(jobLevel, keyword) {
			return experienceKeyword
		}
	}

	jobIndex := model.ExperienceLevel(jobLevel).Index()
	if jobIndex < 0 {
		return experienceUnknownJob
	}
	userIndex := userLevel.Index()

	switch diff := userIndex - jobIndex; {
	case diff == 0:
		return experienceExact
	case diff == 1:
		return experienceOverOne
	case diff == -1:
		return experienceUnderOne
	case diff == 2 || diff == -2:
		return experienceTwoApart
	default:
		return experienceFarApart
	}
}
