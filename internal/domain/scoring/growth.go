package scoring

import (
	"strings"

	"github.com/okian/jobrec/internal/domain/model"
)

// Growth rubric scores by keyword tier, checked high to declining; the
// first tier with any hit wins.
const (
	growthHigh      = 95
	growthMedium    = 75
	growthDeclining = 30
	growthDefault   = 60
)

// growthTiers holds the keyword lists for each market tier.
type growthTiers struct {
	high      []string
	medium    []string
	declining []string
}

// defaultGrowthTiers reflects the current hiring market: expanding fields,
// the broad mainstream, and technologies on their way out.
func defaultGrowthTiers() growthTiers {
	return growthTiers{
		high: []string{
			"ai", "artificial intelligence", "machine learning", "ml", "deep learning",
			"cloud", "aws", "azure", "gcp", "kubernetes", "docker",
			"cybersecurity", "security", "blockchain", "cryptocurrency",
			"data science", "big data", "analytics", "python", "react",
		},
		medium: []string{
			"software", "developer", "engineer", "programming", "web development",
			"mobile", "ios", "android", "devops", "automation",
			"database", "sql", "api", "microservices",
		},
		declining: []string{
			"flash", "silverlight", "vb6", "cobol", "fortran",
			"internet explorer", "jquery", "legacy",
		},
	}
}

// growthScore scans the title and description for tier keywords.
func (c *RubricCalculator) growthScore(job model.JobPosting) float64 {
	text := strings.ToLower(job.Title + " " + job.Description)

	for _, keyword := range c.growth.high {
		if strings.Contains(text, keyword) {
			return growthHigh
		}
	}
	for _, keyword := range c.growth.medium {
		if strings.Contains(text, keyword) {
			return growthMedium
		}
	}
	for _, keyword := range c.growth.declining {
		if strings.Contains(text, keyword) {
			return growthDeclining
		}
	}
	return growthDefault
}
