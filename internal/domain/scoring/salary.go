package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/jobrec/internal/domain/model"
)

// Salary rubric.
const (
	salaryOverlapBase  = 80
	salaryOverlapBonus = 20
	salaryBelowRange   = 20 // job pays under expectations
	salaryAboveRange   = 40 // over expectations; often negotiable
)

// salaryPattern extracts thousands-separated amounts from free text like
// "$90,000 - $130,000 a year".
var salaryPattern = regexp.MustCompile(`\$?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)

// salaryScore rates how a job's advertised range fits the profile's band.
// Free-text salary fields come from scrapers and are unreliable; anything
// that does not yield two clean integers scores neutral rather than
// failing the posting.
func (c *RubricCalculator) salaryScore(profile model.UserProfile, job model.JobPosting) float64 {
	if profile.Salary == nil || strings.TrimSpace(job.SalaryText) == "" {
		return c.neutralScore
	}

	jobMin, jobMax, ok := parseSalaryRange(job.SalaryText)
	if !ok {
		return c.neutralScore
	}

	userMin, userMax := profile.Salary.Min, profile.Salary.Max

	if jobMax >= userMin && jobMin <= userMax {
		overlap := minInt(jobMax, userMax) - maxInt(jobMin, userMin)
		userSize := userMax - userMin
		if userSize == 0 {
			// Degenerate single-point expectation inside the job range.
			return maxScore
		}
		score := salaryOverlapBase + float64(overlap)/float64(userSize)*salaryOverlapBonus
		if score > maxScore {
			return maxScore
		}
		return score
	}

	if jobMax < userMin {
		return salaryBelowRange
	}
	return salaryAboveRange
}

// parseSalaryRange pulls the first two amounts out of a salary string.
func parseSalaryRange(text string) (low, high int, ok bool) {
	matches := salaryPattern.FindAllStringSubmatch(text, 2)
	if len(matches) < 2 {
		return 0, 0, false
	}
	low, err := strconv.Atoi(strings.ReplaceAll(matches[0][1], ",", ""))
	if err != nil {
		return 0, 0, false
	}
	high, err = strconv.Atoi(strings.ReplaceAll(matches[1][1], ",", ""))
	if err != nil {
		return 0, 0, false
	}
	return low, high, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
