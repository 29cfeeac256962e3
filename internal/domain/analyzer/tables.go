package analyzer

// Company sizes and growth stages used by the built-in company table.
const (
	sizeUnknown    = "unknown"
	sizeLarge      = "large"
	sizeEnterprise = "enterprise"

	stageEarly   = "early"
	stageGrowth  = "growth"
	stageMature  = "mature"
	stageUnknown = "unknown"
)

// defaultCompanyKey is the table entry returned when no company matches.
const defaultCompanyKey = "unknown"

func defaultCompanyTable() map[string]CompanyInsight {
	return map[string]CompanyInsight{
		"google": {
			Name:            "Google",
			Industry:        "Technology",
			Size:            sizeEnterprise,
			ReputationScore: 95,
			GrowthStage:     stageMature,
			CultureKeywords: []string{"innovative", "data-driven", "collaborative"},
			Benefits:        []string{"Excellent health insurance", "Stock options", "Learning budget"},
			RemoteFriendly:  true,
		},
		"microsoft": {
			Name:            "Microsoft",
			Industry:        "Technology",
			Size:            sizeEnterprise,
			ReputationScore: 92,
			GrowthStage:     stageMature,
			CultureKeywords: []string{"inclusive", "growth mindset", "global"},
			Benefits:        []string{"Comprehensive benefits", "Flexible work", "Career development"},
			RemoteFriendly:  true,
		},
		"amazon": {
			Name:            "Amazon",
			Industry:        "Technology/E-commerce",
			Size:            sizeEnterprise,
			ReputationScore: 78,
			GrowthStage:     stageMature,
			CultureKeywords: []string{"customer obsessed", "fast-paced", "high standards"},
			Benefits:        []string{"Stock options", "Career advancement", "Global opportunities"},
			RemoteFriendly:  false,
		},
		"netflix": {
			Name:            "Netflix",
			Industry:        "Media/Technology",
			Size:            sizeLarge,
			ReputationScore: 85,
			GrowthStage:     stageMature,
			CultureKeywords: []string{"freedom", "responsibility", "high performance"},
			Benefits:        []string{"Unlimited PTO", "Top of market pay", "Stock options"},
			RemoteFriendly:  true,
		},
		defaultCompanyKey: {
			Name:            "Unknown Company",
			Industry:        "Various",
			Size:            sizeUnknown,
			ReputationScore: 65,
			GrowthStage:     stageUnknown,
			CultureKeywords: []string{"professional"},
			Benefits:        []string{"Standard benefits"},
			RemoteFriendly:  false,
		},
	}
}

// Sector names. SectorGeneral is the fallback when no keyword list hits;
// it has no insight entry.
const (
	SectorAI       = "artificial intelligence"
	SectorCloud    = "cloud computing"
	SectorData     = "data science"
	SectorSecurity = "cybersecurity"
	SectorWeb      = "web development"
	SectorMobile   = "mobile development"
	SectorGeneral  = "general technology"
)

// sectorKeywords is scanned in order; the first sector whose keyword
// appears in the posting text wins.
var sectorKeywords = []struct {
	sector   string
	keywords []string
}{
	{SectorAI, []string{"ai", "artificial intelligence", "machine learning", "deep learning", "neural", "tensorflow", "pytorch"}},
	{SectorCloud, []string{"cloud", "aws", "azure", "gcp", "kubernetes", "docker", "devops"}},
	{SectorData, []string{"data scientist", "data analysis", "analytics", "pandas", "sql", "statistics"}},
	{SectorSecurity, []string{"security", "cybersecurity", "infosec", "penetration", "vulnerability"}},
	{SectorWeb, []string{"web developer", "frontend", "backend", "react", "angular", "vue", "html", "css"}},
	{SectorMobile, []string{"mobile", "ios", "android", "swift", "kotlin", "react native", "flutter"}},
}

func defaultSectorTable() map[string]SectorInsight {
	return map[string]SectorInsight{
		SectorAI: {
			Sector:         "Artificial Intelligence",
			GrowthRate:     "high",
			JobDemand:      "very high",
			SalaryTrend:    "increasing",
			Outlook:        "excellent",
			KeyTrends:      []string{"Generative AI", "MLOps", "AI Ethics", "Edge AI"},
			EmergingSkills: []string{"Large Language Models", "Prompt Engineering", "AI Safety"},
		},
		SectorCloud: {
			Sector:         "Cloud Computing",
			GrowthRate:     "high",
			JobDemand:      "very high",
			SalaryTrend:    "increasing",
			Outlook:        "excellent",
			KeyTrends:      []string{"Multi-cloud", "Serverless", "Container orchestration", "DevOps"},
			EmergingSkills: []string{"Kubernetes", "Terraform", "Site Reliability Engineering"},
		},
		SectorData: {
			Sector:         "Data Science",
			GrowthRate:     "medium",
			JobDemand:      "high",
			SalaryTrend:    "stable",
			Outlook:        "good",
			KeyTrends:      []string{"Real-time analytics", "AutoML", "Data governance", "Privacy"},
			EmergingSkills: []string{"MLOps", "Data mesh", "Federated learning"},
		},
		SectorSecurity: {
			Sector:         "Cybersecurity",
			GrowthRate:     "high",
			JobDemand:      "very high",
			SalaryTrend:    "increasing",
			Outlook:        "excellent",
			KeyTrends:      []string{"Zero trust", "Cloud security", "AI-powered threats", "Privacy"},
			EmergingSkills: []string{"Cloud security", "Threat hunting", "Security automation"},
		},
		SectorWeb: {
			Sector:         "Web Development",
			GrowthRate:     "medium",
			JobDemand:      "high",
			SalaryTrend:    "stable",
			Outlook:        "good",
			KeyTrends:      []string{"JAMstack", "Progressive Web Apps", "WebAssembly", "Micro-frontends"},
			EmergingSkills: []string{"React", "TypeScript", "GraphQL", "Serverless"},
		},
		SectorMobile: {
			Sector:         "Mobile Development",
			GrowthRate:     "medium",
			JobDemand:      "medium",
			SalaryTrend:    "stable",
			Outlook:        "fair",
			KeyTrends:      []string{"Cross-platform", "5G applications", "AR/VR", "IoT integration"},
			EmergingSkills: []string{"Flutter", "React Native", "SwiftUI", "Kotlin Multiplatform"},
		},
	}
}

// defaultBenchmarks maps a role family, matched by substring against the
// lowercased job title, to expected salaries per experience level.
func defaultBenchmarks() map[string]map[string]int {
	return map[string]map[string]int{
		"data scientist": {
			"entry":     75000,
			"mid":       110000,
			"senior":    150000,
			"executive": 200000,
		},
		"software engineer": {
			"entry":     70000,
			"mid":       100000,
			"senior":    140000,
			"executive": 180000,
		},
		"machine learning engineer": {
			"entry":     80000,
			"mid":       120000,
			"senior":    160000,
			"executive": 220000,
		},
		"product manager": {
			"entry":     85000,
			"mid":       125000,
			"senior":    165000,
			"executive": 250000,
		},
		"data analyst": {
			"entry":     55000,
			"mid":       75000,
			"senior":    95000,
			"executive": 125000,
		},
	}
}

// defaultResources holds curated starting points for skills that show up
// as gaps most often. Anything else gets a generic plan.
func defaultResources() map[string][]string {
	return map[string][]string{
		"python":           {"Python.org tutorial", "Codecademy Python course", "Automate the Boring Stuff"},
		"machine learning": {"Andrew Ng Coursera course", "Hands-On ML book", "Kaggle Learn"},
		"aws":              {"AWS Cloud Practitioner cert", "AWS free tier tutorials", "A Cloud Guru"},
		"react":            {"React official tutorial", "FreeCodeCamp React", "Build a portfolio site"},
	}
}
