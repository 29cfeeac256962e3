package testjobs

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/okian/jobrec/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	archetypeCount     = 8
	daysBack           = 30
)

// Constants for archetype cases.
const (
	caseBackend  = 0
	caseFrontend = 1
	caseData     = 2
	caseDevOps   = 3
	caseML       = 4
	caseMobile   = 5
	caseSecurity = 6
	caseProduct  = 7
)

// archetype describes one family of generated postings. Salary bands are
// annual USD; a posting picks a random point inside the band.
type archetype struct {
	titles    []string
	skills    []string
	salaryMin int
	salaryMax int
}

var archetypes = map[int64]archetype{
	caseBackend: {
		titles:    []string{"Backend Developer", "Backend Engineer", "API Engineer", "Software Engineer, Backend"},
		skills:    []string{"Go", "Python", "PostgreSQL", "Docker", "Kubernetes", "Redis", "gRPC"},
		salaryMin: 90_000, salaryMax: 160_000,
	},
	caseFrontend: {
		titles:    []string{"Frontend Developer", "Frontend Engineer", "UI Engineer", "Web Developer"},
		skills:    []string{"JavaScript", "TypeScript", "React", "CSS", "HTML", "Next.js"},
		salaryMin: 80_000, salaryMax: 150_000,
	},
	caseData: {
		titles:    []string{"Data Scientist", "Data Analyst", "Data Engineer", "Analytics Engineer"},
		skills:    []string{"Python", "SQL", "Pandas", "Spark", "Airflow", "Snowflake"},
		salaryMin: 95_000, salaryMax: 170_000,
	},
	caseDevOps: {
		titles:    []string{"DevOps Engineer", "Site Reliability Engineer", "Platform Engineer", "Infrastructure Engineer"},
		skills:    []string{"Kubernetes", "Terraform", "AWS", "Docker", "Prometheus", "Linux"},
		salaryMin: 100_000, salaryMax: 175_000,
	},
	caseML: {
		titles:    []string{"Machine Learning Engineer", "ML Engineer", "AI Engineer", "Research Engineer"},
		skills:    []string{"Python", "PyTorch", "TensorFlow", "MLOps", "SQL", "Kubernetes"},
		salaryMin: 120_000, salaryMax: 200_000,
	},
	caseMobile: {
		titles:    []string{"Mobile Developer", "iOS Engineer", "Android Engineer", "Mobile Engineer"},
		skills:    []string{"Swift", "Kotlin", "React Native", "REST APIs", "Git"},
		salaryMin: 85_000, salaryMax: 155_000,
	},
	caseSecurity: {
		titles:    []string{"Security Engineer", "Application Security Engineer", "Security Analyst"},
		skills:    []string{"Python", "Linux", "Penetration Testing", "AWS", "Threat Modeling"},
		salaryMin: 105_000, salaryMax: 180_000,
	},
	caseProduct: {
		titles:    []string{"Product Manager", "Technical Product Manager", "Product Owner"},
		skills:    []string{"Product Strategy", "SQL", "Analytics", "Agile", "Roadmapping"},
		salaryMin: 100_000, salaryMax: 185_000,
	},
}

var companies = []string{
	"TechCorp", "DataWorks", "CloudCo", "Google", "Microsoft", "Amazon",
	"Netflix", "StartupHub", "FinEdge", "HealthBridge", "ShopSphere", "GridWave",
}

var locations = []string{
	"Remote", "San Francisco, CA", "New York, NY", "Austin, TX",
	"Seattle, WA", "Boston, MA", "Denver, CO", "Chicago, IL",
}

var levels = []string{"entry", "mid", "mid", "senior", "senior", "executive"}

var sources = []string{"boardA", "boardB", "boardC", "scraper"}

// randInt63n returns a random int64 in [0, n) using crypto/rand.
func randInt63n(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pick returns a random element of list.
func pick(list []string) string {
	return list[randInt63n(int64(len(list)))]
}

// generateJobs creates the specified number of postings with unique IDs.
func generateJobs(ctx context.Context, config *Config, stats *Stats) ([]Job, error) {
	logger.Get().Info(ctx, "generating postings with unique IDs", logger.Int("numJobs", config.NumJobs))

	jobs := make([]Job, config.NumJobs)

	// Pre-allocate IDs to ensure uniqueness
	ids := make([]string, config.NumJobs)
	for i := 0; i < config.NumJobs; i++ {
		ids[i] = uuid.New().String()
	}

	// Generate postings concurrently
	type jobResult struct {
		index int
		job   Job
		err   error
	}

	resultChan := make(chan jobResult, config.NumJobs)

	// Use worker pool for posting generation
	workerCount := minInt(config.Workers, config.NumJobs)
	jobsPerWorker := config.NumJobs / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * jobsPerWorker
		end := start + jobsPerWorker
		if worker == workerCount-1 {
			end = config.NumJobs // Last worker gets the remainder
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- jobResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- jobResult{index: i, job: generateSingleJob(i, ids[i])}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumJobs; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during posting generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate posting %d: %w", result.index, result.err)
			}
			jobs[result.index] = result.job
		}
	}

	stats.JobsGenerated = len(jobs)
	logger.Get().Info(ctx, "generated postings successfully", logger.Int("count", len(jobs)))

	return jobs, nil
}

// generateSingleJob creates a single posting with the given index and ID.
// The index is baked into the title so every fingerprint is unique and the
// deduper does not drop generated postings.
func generateSingleJob(index int, id string) Job {
	arch := archetypes[randInt63n(archetypeCount)]

	salaryLow := arch.salaryMin + int(getRandomFloat()*float64(arch.salaryMax-arch.salaryMin)/2)
	salaryHigh := salaryLow + 20_000 + int(getRandomFloat()*30_000)

	posted := time.Now().UTC().AddDate(0, 0, -int(randInt63n(daysBack)))

	return Job{
		ID:              id,
		Title:           fmt.Sprintf("%s %d", pick(arch.titles), index),
		Company:         pick(companies),
		Location:        pick(locations),
		RequiredSkills:  sampleSkills(arch.skills),
		ExperienceLevel: pick(levels),
		SalaryRange:     fmt.Sprintf("$%d - $%d", salaryLow, salaryHigh),
		Source:          pick(sources),
		PostedAt:        posted.Format("2006-01-02"),
	}
}

// sampleSkills returns three to five skills from the archetype's pool.
func sampleSkills(pool []string) []string {
	n := 3 + int(randInt63n(3))
	if n > len(pool) {
		n = len(pool)
	}
	// Partial shuffle of a copy, then take the head.
	out := make([]string, len(pool))
	copy(out, pool)
	for i := 0; i < n; i++ {
		j := i + int(randInt63n(int64(len(out)-i)))
		out[i], out[j] = out[j], out[i]
	}
	return out[:n]
}

// generateProfile builds a candidate to score the ingested catalog against.
func generateProfile() Profile {
	return Profile{
		Skills:          []string{"Go", "Python", "Docker", "Kubernetes", "SQL"},
		ExperienceLevel: "mid",
		PreferredRoles:  []string{"backend developer", "platform engineer"},
		Location:        "Remote",
		SalaryRange:     &SalaryRange{Min: 90_000, Max: 140_000},
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
