// Package analyzer enriches scored recommendations with market context:
// company reputation, industry sector trends, salary competitiveness and
// growth opportunities. All insight lookups degrade to defaults; nothing in
// this package fails except on context cancellation.
package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/jobrec/internal/domain/model"
	"github.com/okian/jobrec/internal/domain/types"
)

// Salary competitiveness statuses.
const (
	StatusAboveMarket      = "above_market"
	StatusCompetitive      = "competitive"
	StatusMarketRate       = "market_rate"
	StatusBelowMarket      = "below_market"
	StatusSignificantlyLow = "significantly_below"
	StatusUnknown          = "unknown"
)

// Competitiveness bands in percent difference from the benchmark.
const (
	aboveMarketPct = 15
	competitivePct = 5
	marketRatePct  = -5
	belowMarketPct = -15
)

const maxGrowthOpportunities = 5

// CompanyInsight describes what is known about an employer.
type CompanyInsight struct {
	Name            string   `json:"name"`
	Industry        string   `json:"industry"`
	Size            string   `json:"size"`
	ReputationScore float64  `json:"reputation_score"`
	GrowthStage     string   `json:"growth_stage"`
	CultureKeywords []string `json:"culture_keywords"`
	Benefits        []string `json:"notable_benefits"`
	RemoteFriendly  bool     `json:"remote_friendly"`
}

// SectorInsight describes the state of an industry sector.
type SectorInsight struct {
	Sector         string   `json:"sector"`
	GrowthRate     string   `json:"growth_rate"`
	JobDemand      string   `json:"job_demand"`
	SalaryTrend    string   `json:"salary_trend"`
	Outlook        string   `json:"future_outlook"`
	KeyTrends      []string `json:"key_trends"`
	EmergingSkills []string `json:"emerging_skills"`
}

// SalaryComparison is the outcome of comparing a posting's advertised range
// against the market benchmark for its role family and level.
type SalaryComparison struct {
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	JobRange      string  `json:"job_range,omitempty"`
	Benchmark     string  `json:"market_benchmark,omitempty"`
	DifferencePct float64 `json:"difference_pct"`
}

// JobInsights bundles the market context for a single posting.
type JobInsights struct {
	Company             CompanyInsight `json:"company"`
	Sector              string         `json:"sector"`
	Industry            *SectorInsight `json:"industry,omitempty"`
	GrowthOpportunities []string       `json:"growth_opportunities"`
}

// Analyzer provides market context for postings and recommendation sets.
type Analyzer interface {
	// AnalyzeJob assembles company, sector and growth insights for a posting.
	AnalyzeJob(ctx context.Context, job model.JobPosting) (JobInsights, error)
	// CompareSalary rates the posting's salary against the benchmark for the
	// given experience level.
	CompareSalary(job model.JobPosting, level model.ExperienceLevel) SalaryComparison
	// GrowthOpportunities lists up to five growth angles for the posting.
	GrowthOpportunities(job model.JobPosting) []string
	// Explain produces a market-context narrative for one recommendation.
	Explain(rec types.Recommendation, profile model.UserProfile) string
	// LearningPlan maps each missing skill to concrete starting resources.
	LearningPlan(missing []string) map[string][]string
	// BuildReport renders the full recommendation run into a market report.
	BuildReport(ctx context.Context, profile model.UserProfile, recs []types.Recommendation) (MarketReport, error)
}

// InMemoryAnalyzer serves insights from static in-process tables.
type InMemoryAnalyzer struct {
	companies      map[string]CompanyInsight
	companyOrder   []string
	sectors        map[string]SectorInsight
	benchmarks     map[string]map[string]int
	benchmarkOrder []string
	resources      map[string][]string
}

var _ Analyzer = (*InMemoryAnalyzer)(nil)

// NewInMemoryAnalyzer builds an analyzer over the built-in tables, then
// applies options. Options with invalid arguments are ignored.
func NewInMemoryAnalyzer(opts ...Option) *InMemoryAnalyzer {
	a := &InMemoryAnalyzer{
		companies:      defaultCompanyTable(),
		companyOrder:   []string{"google", "microsoft", "amazon", "netflix", defaultCompanyKey},
		sectors:        defaultSectorTable(),
		benchmarks:     defaultBenchmarks(),
		benchmarkOrder: []string{"data scientist", "software engineer", "machine learning engineer", "product manager", "data analyst"},
		resources:      defaultResources(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Company resolves insight for a company name: exact table hit first, then
// partial containment either way, then the default entry renamed to the
// queried company.
func (a *InMemoryAnalyzer) Company(name string) CompanyInsight {
	key := strings.ToLower(strings.TrimSpace(name))

	if insight, ok := a.companies[key]; ok {
		return insight
	}
	for _, known := range a.companyOrder {
		if known == defaultCompanyKey {
			continue
		}
		if strings.Contains(key, known) || strings.Contains(known, key) {
			return a.companies[known]
		}
	}

	fallback := a.companies[defaultCompanyKey]
	if name != "" {
		fallback.Name = name
	}
	return fallback
}

// DetectSector classifies a posting into a sector by scanning its title and
// description for the sector keyword lists, first hit wins. Postings that
// match nothing are classified as SectorGeneral.
func (a *InMemoryAnalyzer) DetectSector(job model.JobPosting) string {
	text := strings.ToLower(job.Title + " " + job.Description)
	for _, entry := range sectorKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.sector
			}
		}
	}
	return SectorGeneral
}

// SectorInsightFor returns the insight for a sector name, if one exists.
// SectorGeneral has no insight.
func (a *InMemoryAnalyzer) SectorInsightFor(sector string) (SectorInsight, bool) {
	insight, ok := a.sectors[strings.ToLower(sector)]
	return insight, ok
}

// AnalyzeJob assembles the full insight bundle for one posting.
func (a *InMemoryAnalyzer) AnalyzeJob(ctx context.Context, job model.JobPosting) (JobInsights, error) {
	if err := ctx.Err(); err != nil {
		return JobInsights{}, err
	}

	insights := JobInsights{
		Company:             a.Company(job.Company),
		Sector:              a.DetectSector(job),
		GrowthOpportunities: a.GrowthOpportunities(job),
	}
	if sector, ok := a.SectorInsightFor(insights.Sector); ok {
		insights.Industry = &sector
	}
	return insights, nil
}

// moneyPrinter renders dollar amounts with thousands separators.
var moneyPrinter = message.NewPrinter(language.English)

// salaryPattern extracts dollar amounts like "$90,000" or "130000.00".
var salaryPattern = regexp.MustCompile(`\$?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)

// CompareSalary rates the posting's advertised range against the benchmark
// for its role family at the given level. Every parse or lookup miss yields
// StatusUnknown with a reason rather than an error.
func (a *InMemoryAnalyzer) CompareSalary(job model.JobPosting, level model.ExperienceLevel) SalaryComparison {
	if job.SalaryText == "" {
		return SalaryComparison{Status: StatusUnknown, Message: "Salary not specified"}
	}

	tokens := salaryPattern.FindAllStringSubmatch(job.SalaryText, 2)
	if len(tokens) < 2 {
		return SalaryComparison{Status: StatusUnknown, Message: "Cannot parse salary range"}
	}
	jobMin, errMin := strconv.Atoi(strings.ReplaceAll(tokens[0][1], ",", ""))
	jobMax, errMax := strconv.Atoi(strings.ReplaceAll(tokens[1][1], ",", ""))
	if errMin != nil || errMax != nil {
		return SalaryComparison{Status: StatusUnknown, Message: "Error parsing salary data"}
	}
	jobAvg := (jobMin + jobMax) / 2

	benchmark, ok := a.benchmarkFor(job.Title, level)
	if !ok {
		return SalaryComparison{Status: StatusUnknown, Message: "No benchmark data available"}
	}

	diffPct := float64(jobAvg-benchmark) / float64(benchmark) * 100

	cmp := SalaryComparison{
		JobRange:      moneyPrinter.Sprintf("$%d - $%d", jobMin, jobMax),
		Benchmark:     moneyPrinter.Sprintf("$%d", benchmark),
		DifferencePct: diffPct,
	}
	switch {
	case diffPct >= aboveMarketPct:
		cmp.Status = StatusAboveMarket
		cmp.Message = fmt.Sprintf("Salary is %.0f%% above market average", diffPct)
	case diffPct >= competitivePct:
		cmp.Status = StatusCompetitive
		cmp.Message = fmt.Sprintf("Salary is %.0f%% above market average", diffPct)
	case diffPct >= marketRatePct:
		cmp.Status = StatusMarketRate
		cmp.Message = "Salary is at market rate"
	case diffPct >= belowMarketPct:
		cmp.Status = StatusBelowMarket
		cmp.Message = fmt.Sprintf("Salary is %.0f%% below market average", -diffPct)
	default:
		cmp.Status = StatusSignificantlyLow
		cmp.Message = fmt.Sprintf("Salary is %.0f%% below market average", -diffPct)
	}
	return cmp
}

// benchmarkFor finds the first role family contained in the job title and
// returns its salary for the level, falling back to the mid band when the
// level has no entry.
func (a *InMemoryAnalyzer) benchmarkFor(title string, level model.ExperienceLevel) (int, bool) {
	titleLower := strings.ToLower(title)
	for _, role := range a.benchmarkOrder {
		if !strings.Contains(titleLower, role) {
			continue
		}
		bands := a.benchmarks[role]
		if salary, ok := bands[string(level)]; ok {
			return salary, true
		}
		if salary, ok := bands[string(model.LevelMid)]; ok {
			return salary, true
		}
		return 0, false
	}
	return 0, false
}

// GrowthOpportunities lists growth angles derived from the posting's sector,
// employer and title, capped at five.
func (a *InMemoryAnalyzer) GrowthOpportunities(job model.JobPosting) []string {
	opportunities := make([]string, 0, maxGrowthOpportunities)

	sector := a.DetectSector(job)
	if insight, ok := a.SectorInsightFor(sector); ok {
		if insight.Outlook == "excellent" || insight.Outlook == "good" {
			opportunities = append(opportunities, fmt.Sprintf("Strong industry growth potential in %s", insight.Sector))
		}
		if len(insight.EmergingSkills) > 0 {
			opportunities = append(opportunities, fmt.Sprintf("Opportunity to learn emerging skills: %s", strings.Join(firstN(insight.EmergingSkills, 3), ", ")))
		}
	}

	company := a.Company(job.Company)
	if company.GrowthStage == stageEarly || company.GrowthStage == stageGrowth {
		opportunities = append(opportunities, "High growth potential at an expanding company")
	}
	if company.Size == sizeLarge || company.Size == sizeEnterprise {
		opportunities = append(opportunities, "Access to diverse projects and career paths at a large organization")
	}

	titleLower := strings.ToLower(job.Title)
	if strings.Contains(titleLower, "senior") {
		opportunities = append(opportunities, "Leadership and mentoring opportunities")
	}
	if strings.Contains(titleLower, "lead") || strings.Contains(titleLower, "principal") {
		opportunities = append(opportunities, "Technical leadership and architecture responsibilities")
	}

	return firstN(opportunities, maxGrowthOpportunities)
}

// LearningPlan maps each missing skill to starting resources: a curated list
// when one exists, otherwise a generic three-step plan. Keys are the skills
// as given.
func (a *InMemoryAnalyzer) LearningPlan(missing []string) map[string][]string {
	plan := make(map[string][]string, len(missing))
	for _, skill := range missing {
		if resources, ok := a.resources[strings.ToLower(skill)]; ok {
			plan[skill] = append([]string(nil), resources...)
			continue
		}
		plan[skill] = []string{
			fmt.Sprintf("Online course in %s", skill),
			fmt.Sprintf("Practice %s with hands-on projects", skill),
			fmt.Sprintf("Join %s community forums and discussions", skill),
		}
	}
	return plan
}

// firstN returns at most n leading elements without copying the backing array.
func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
