package testjobs

import "time"

// Config holds configuration for the job ingestion and recommendation test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumJobs    int           // Number of postings to generate
	TopK       int           // Number of recommendations to request
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated postings
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Job mirrors the posting payload accepted by POST /api/v1/jobs
type Job struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Description     string   `json:"description,omitempty"`
	RequiredSkills  []string `json:"skills_required"`
	ExperienceLevel string   `json:"experience_level"`
	SalaryRange     string   `json:"salary_range"`
	Source          string   `json:"source"`
	PostedAt        string   `json:"posted_date"`
}

// Profile mirrors the candidate payload for POST /api/v1/recommendations
type Profile struct {
	Skills          []string     `json:"skills"`
	ExperienceLevel string       `json:"experience_level"`
	PreferredRoles  []string     `json:"preferred_roles"`
	Location        string       `json:"location,omitempty"`
	SalaryRange     *SalaryRange `json:"salary_range,omitempty"`
}

// SalaryRange is the desired annual salary band
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Recommendation is one ranked entry in the recommendation response
type Recommendation struct {
	Rank  int `json:"rank"`
	Job   Job `json:"job"`
	Score struct {
		Overall float64 `json:"overall_score"`
		Skill   float64 `json:"skill_score"`
	} `json:"score"`
	Explanation string `json:"explanation"`
}

// recommendationResponse is the envelope returned by the recommendations endpoint
type recommendationResponse struct {
	Count           int              `json:"count"`
	Recommendations []Recommendation `json:"recommendations"`
}

// AckResponse represents the response from posting submission
type AckResponse struct {
	Status string `json:"status"`
	JobID  string `json:"job_id"`
}

// Stats holds test statistics
type Stats struct {
	JobsGenerated    int
	JobsSubmitted    int
	JobsAccepted     int
	JobsRejected     int
	JobsFailed       int
	CatalogSize      int
	Recommendations  int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
