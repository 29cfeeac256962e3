package model

import (
	"strings"
	"time"
)

// JobPosting represents one job opening submitted for scoring or ingestion.
// All optional fields tolerate arbitrary free text; malformed values degrade
// to neutral scores downstream instead of failing the batch.
type JobPosting struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location,omitempty"`
	Description     string   `json:"description,omitempty"`
	RequiredSkills  []string `json:"skills_required,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	SalaryText      string   `json:"salary_range,omitempty"`
	JobType         string   `json:"job_type,omitempty"`
	WorkType        string   `json:"work_type,omitempty"`
	Source          string   `json:"source,omitempty"`
	URL             string   `json:"url,omitempty"`
	PostedAt        string   `json:"posted_date,omitempty"`
}

// postedLayouts are the date formats scrapers and clients are known to send.
var postedLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// PostedTime parses the posted-date string. The second return is false when
// the field is empty or unparseable; callers fall back to ingestion time.
func (j JobPosting) PostedTime() (time.Time, bool) {
	raw := strings.TrimSpace(j.PostedAt)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range postedLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Fingerprint is a stable identity for duplicate suppression across
// re-submissions of the same opening, independent of the assigned ID.
func (j JobPosting) Fingerprint() string {
	parts := []string{j.Title, j.Company, j.Location}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}
