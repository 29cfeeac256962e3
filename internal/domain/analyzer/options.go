package analyzer

import "strings"

// Option configures an InMemoryAnalyzer.
type Option func(*InMemoryAnalyzer)

// WithCompany registers or replaces a company insight, keyed by the
// lowercased name. Empty names are ignored.
func WithCompany(name string, insight CompanyInsight) Option {
	return func(a *InMemoryAnalyzer) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return
		}
		if _, exists := a.companies[key]; !exists {
			// New companies are scanned for partial matches before the
			// default entry.
			a.companyOrder = append(a.companyOrder[:len(a.companyOrder)-1],
				key, defaultCompanyKey)
		}
		a.companies[key] = insight
	}
}

// WithSector registers or replaces a sector insight. Empty names are ignored.
func WithSector(name string, insight SectorInsight) Option {
	return func(a *InMemoryAnalyzer) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return
		}
		a.sectors[key] = insight
	}
}

// WithBenchmark registers or replaces salary bands for a role family.
// Empty role names and empty band sets are ignored.
func WithBenchmark(role string, bands map[string]int) Option {
	return func(a *InMemoryAnalyzer) {
		key := strings.ToLower(strings.TrimSpace(role))
		if key == "" || len(bands) == 0 {
			return
		}
		if _, exists := a.benchmarks[key]; !exists {
			a.benchmarkOrder = append(a.benchmarkOrder, key)
		}
		copied := make(map[string]int, len(bands))
		for level, salary := range bands {
			copied[level] = salary
		}
		a.benchmarks[key] = copied
	}
}

// WithLearningResources sets the curated starting resources for a skill.
// Empty skills or resource lists are ignored.
func WithLearningResources(skill string, resources []string) Option {
	return func(a *InMemoryAnalyzer) {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" || len(resources) == 0 {
			return
		}
		a.resources[key] = append([]string(nil), resources...)
	}
}
