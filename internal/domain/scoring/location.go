package scoring

import (
	"strings"

	"github.com/okian/jobrec/internal/domain/model"
)

// Location rubric.
const (
	locationRemote     = 100
	locationContained  = 100
	locationSameCity   = 90
	locationSameRegion = 60
	locationMismatch   = 30
)

// locationScore compares locations as "city, region" strings. Remote jobs
// always score full marks; missing data on either side is neutral.
func (c *RubricCalculator) locationScore(profile model.UserProfile, job model.JobPosting) float64 {
	if profile.Location == "" || job.Location == "" {
		return c.neutralScore
	}

	userLoc := strings.ToLower(profile.Location)
	jobLoc := strings.ToLower(job.Location)

	if strings.Contains(jobLoc, "remote") {
		return locationRemote
	}
	if strings.Contains(jobLoc, userLoc) || strings.Contains(userLoc, jobLoc) {
		return locationContained
	}

	userParts := strings.Split(userLoc, ",")
	jobParts := strings.Split(jobLoc, ",")

	if strings.TrimSpace(userParts[0]) == strings.TrimSpace(jobParts[0]) {
		return locationSameCity
	}
	if len(userParts) > 1 && len(jobParts) > 1 {
		if strings.TrimSpace(userParts[len(userParts)-1]) == strings.TrimSpace(jobParts[len(jobParts)-1]) {
			return locationSameRegion
		}
	}
	return locationMismatch
}
