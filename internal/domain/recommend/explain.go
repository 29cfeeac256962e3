package recommend

import (
	"fmt"
	"strings"

	"github.com/okian/jobrec/internal/domain/model"
	"github.com/okian/jobrec/internal/domain/types"
)

// Quality tiers for the opening statement.
const (
	qualityExcellent = 85
	qualityVeryGood  = 75
	qualityGood      = 65
	qualityFair      = 50
)

// Fragment thresholds for the skill, role and growth commentary.
const (
	skillExcellent = 80
	skillSolid     = 60
	roleClose      = 80
	roleAligned    = 60
	growthStrong   = 80
	growthDecent   = 60
)

// explain assembles the recommendation text: quality opener, then skill,
// role and growth commentary gated by score thresholds.
func (c *TemplateComposer) explain(job model.JobPosting, scores types.ScoreBreakdown, analysis types.SkillAnalysis) string {
	parts := make([]string, 0, 4)

	quality := matchQuality(scores.Overall)
	parts = append(parts, fmt.Sprintf("This %s position at %s is %s %s match for your profile.",
		job.Title, job.Company, article(quality), quality))

	switch {
	case scores.Skill >= skillExcellent:
		parts = append(parts, fmt.Sprintf("Your skills align excellently with the requirements, covering %.0f%% of the needed skills.", analysis.Coverage))
	case scores.Skill >= skillSolid:
		parts = append(parts, fmt.Sprintf("You have solid skill overlap with %.0f%% coverage of requirements, with some growth opportunities.", analysis.Coverage))
	default:
		gaps := analysis.Missing
		if len(gaps) > c.maxNamedGaps {
			gaps = gaps[:c.maxNamedGaps]
		}
		parts = append(parts, fmt.Sprintf("While there are skill gaps to address, this role offers significant learning opportunities in %s.", strings.Join(gaps, ", ")))
	}

	if scores.Role >= roleClose {
		parts = append(parts, "The role closely matches your career preferences.")
	} else if scores.Role >= roleAligned {
		parts = append(parts, "This role aligns well with your career direction.")
	}

	if scores.Growth >= growthStrong {
		parts = append(parts, "The position is in a high-growth area with excellent future prospects.")
	} else if scores.Growth >= growthDecent {
		parts = append(parts, "The role offers good career growth opportunities.")
	}

	return strings.Join(parts, " ")
}

// matchQuality maps an overall score onto its five-tier label.
func matchQuality(overall float64) string {
	switch {
	case overall >= qualityExcellent:
		return "excellent"
	case overall >= qualityVeryGood:
		return "very good"
	case overall >= qualityGood:
		return "good"
	case overall >= qualityFair:
		return "fair"
	default:
		return "developing"
	}
}

// article picks the indefinite article for a quality label.
func article(word string) string {
	if len(word) > 0 && strings.ContainsRune("aeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}
