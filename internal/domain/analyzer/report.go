package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/okian/jobrec/internal/domain/model"
	"github.com/okian/jobrec/internal/domain/types"
)

// Narrative thresholds for the per-recommendation explanation.
const (
	reputationStrong  = 80
	coverageExcellent = 80
	coverageSolid     = 60
	experiencePerfect = 85
	experienceForward = 70
)

// Render limits.
const (
	reportSkillsShown    = 5
	reportPlansShown     = 2
	reportResourcesShown = 2
)

// Explain produces a market-context narrative for one recommendation:
// company standing, sector trends, skill fit, career progression and salary
// competitiveness, in that order. Sections without a story are omitted.
func (a *InMemoryAnalyzer) Explain(rec types.Recommendation, profile model.UserProfile) string {
	job := rec.Job
	parts := make([]string, 0, 6)

	company := a.Company(job.Company)
	if company.ReputationScore >= reputationStrong {
		parts = append(parts, fmt.Sprintf(
			"%s is a well-regarded company in the %s industry with a strong reputation for %s.",
			job.Company, company.Industry, strings.Join(firstN(company.CultureKeywords, 2), ", ")))
	}

	if insight, ok := a.SectorInsightFor(a.DetectSector(job)); ok {
		if insight.GrowthRate == "high" {
			parts = append(parts, fmt.Sprintf(
				"The %s sector is experiencing high growth with %s job demand and %s salaries.",
				insight.Sector, insight.JobDemand, insight.SalaryTrend))
		}
		parts = append(parts, fmt.Sprintf(
			"Key industry trends include %s.", strings.Join(firstN(insight.KeyTrends, 3), ", ")))
	}

	switch coverage := rec.Analysis.Coverage; {
	case coverage >= coverageExcellent:
		parts = append(parts, fmt.Sprintf(
			"Your skill set covers %.0f%% of the job requirements, indicating excellent technical fit.", coverage))
	case coverage >= coverageSolid:
		parts = append(parts, fmt.Sprintf(
			"You meet %.0f%% of the technical requirements, with opportunities to grow in %s.",
			coverage, strings.Join(firstN(rec.MissingSkills, 2), ", ")))
	}

	switch {
	case rec.Scores.Experience >= experiencePerfect:
		parts = append(parts, "This role aligns perfectly with your current experience level.")
	case rec.Scores.Experience >= experienceForward:
		parts = append(parts, "This represents a good step forward in your career progression.")
	}

	if salary := a.CompareSalary(job, profile.Experience); salary.Status == StatusAboveMarket || salary.Status == StatusCompetitive {
		parts = append(parts, fmt.Sprintf("The compensation is competitive - %s.", strings.ToLower(salary.Message)))
	}

	return strings.Join(parts, " ")
}

// ReportEntry is one recommendation expanded with market context.
type ReportEntry struct {
	Rank                int                 `json:"rank"`
	Title               string              `json:"title"`
	Company             string              `json:"company"`
	Location            string              `json:"location,omitempty"`
	Overall             float64             `json:"overall_score"`
	Analysis            string              `json:"analysis"`
	GrowthOpportunities []string            `json:"growth_opportunities,omitempty"`
	SkillGaps           []string            `json:"skill_gaps,omitempty"`
	LearningPlan        map[string][]string `json:"learning_plan,omitempty"`
}

// MarketReport summarizes a full recommendation run for the CLI harness.
type MarketReport struct {
	GeneratedAt  time.Time     `json:"generated_at"`
	Level        string        `json:"experience_level"`
	TopSkills    []string      `json:"top_skills"`
	AverageScore float64       `json:"average_score"`
	Entries      []ReportEntry `json:"recommendations"`
}

// BuildReport expands every recommendation with its market context and
// aggregates run-level statistics.
func (a *InMemoryAnalyzer) BuildReport(ctx context.Context, profile model.UserProfile, recs []types.Recommendation) (MarketReport, error) {
	if err := ctx.Err(); err != nil {
		return MarketReport{}, err
	}

	report := MarketReport{
		GeneratedAt: time.Now(),
		Level:       string(profile.Experience),
		TopSkills:   firstN(profile.Skills, reportSkillsShown),
		Entries:     make([]ReportEntry, 0, len(recs)),
	}

	var total float64
	for i, rec := range recs {
		total += rec.Scores.Overall
		rank := rec.Rank
		if rank == 0 {
			rank = i + 1
		}
		report.Entries = append(report.Entries, ReportEntry{
			Rank:                rank,
			Title:               rec.Job.Title,
			Company:             rec.Job.Company,
			Location:            rec.Job.Location,
			Overall:             rec.Scores.Overall,
			Analysis:            a.Explain(rec, profile),
			GrowthOpportunities: a.GrowthOpportunities(rec.Job),
			SkillGaps:           rec.MissingSkills,
			LearningPlan:        a.LearningPlan(rec.MissingSkills),
		})
	}
	if len(recs) > 0 {
		report.AverageScore = total / float64(len(recs))
	}
	return report, nil
}

var levelTitler = cases.Title(language.English)

// Render formats the report as plain text for terminal output.
func (r MarketReport) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString("CAREER MARKET REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated on: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "User: %s level professional\n", levelTitler.String(r.Level))
	skills := strings.Join(r.TopSkills, ", ")
	if len(r.TopSkills) == reportSkillsShown {
		skills += "..."
	}
	fmt.Fprintf(&b, "Skills: %s\n\n", skills)

	if len(r.Entries) > 0 {
		b.WriteString("EXECUTIVE SUMMARY\n")
		b.WriteString(strings.Repeat("-", 30) + "\n")
		fmt.Fprintf(&b, "• Found %d high-quality job matches\n", len(r.Entries))
		fmt.Fprintf(&b, "• Average compatibility score: %.1f/100\n", r.AverageScore)
		fmt.Fprintf(&b, "• Top recommendation: %s at %s\n\n", r.Entries[0].Title, r.Entries[0].Company)
	}

	for _, entry := range r.Entries {
		fmt.Fprintf(&b, "RECOMMENDATION #%d\n", entry.Rank)
		b.WriteString(strings.Repeat("-", 40) + "\n")
		fmt.Fprintf(&b, "Position: %s\n", entry.Title)
		fmt.Fprintf(&b, "Company: %s\n", entry.Company)
		fmt.Fprintf(&b, "Location: %s\n", entry.Location)
		fmt.Fprintf(&b, "Overall Score: %.1f/100\n\n", entry.Overall)

		if entry.Analysis != "" {
			fmt.Fprintf(&b, "Analysis: %s\n\n", entry.Analysis)
		}

		if len(entry.GrowthOpportunities) > 0 {
			b.WriteString("Growth Opportunities:\n")
			for _, op := range entry.GrowthOpportunities {
				fmt.Fprintf(&b, "   • %s\n", op)
			}
			b.WriteString("\n")
		}

		if len(entry.SkillGaps) > 0 {
			fmt.Fprintf(&b, "Skills to Develop: %s\n", strings.Join(entry.SkillGaps, ", "))
			for _, skill := range firstN(entry.SkillGaps, reportPlansShown) {
				if resources := entry.LearningPlan[skill]; len(resources) > 0 {
					fmt.Fprintf(&b, "   %s: %s\n", skill, strings.Join(firstN(resources, reportResourcesShown), ", "))
				}
			}
			b.WriteString("\n")
		}

		b.WriteString(rule + "\n\n")
	}

	return b.String()
}
