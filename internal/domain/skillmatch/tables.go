package skillmatch

// synonymGroups maps a canonical skill to the aliases seen in postings and
// profiles. Groups are expanded bidirectionally at construction, so lookup
// works from any member to any other member of the same group.
var synonymGroups = map[string][]string{
	// Programming languages
	"javascript": {"js", "ecmascript", "node.js", "nodejs"},
	"python":     {"py", "python3", "python2"},
	"c++":        {"cpp", "c plus plus", "cplusplus"},
	"c#":         {"csharp", "c sharp", ".net", "dotnet"},

	// Databases
	"postgresql": {"postgres", "psql"},
	"mysql":      {"my sql"},
	"mongodb":    {"mongo", "nosql"},
	"sql":        {"structured query language", "database"},

	// Frameworks and libraries
	"react":   {"reactjs", "react.js"},
	"angular": {"angularjs", "angular.js"},
	"vue":     {"vuejs", "vue.js"},
	"node.js": {"nodejs", "node", "javascript"},

	// Cloud platforms
	"aws":   {"amazon web services", "amazon aws"},
	"gcp":   {"google cloud platform", "google cloud"},
	"azure": {"microsoft azure"},

	// Data science
	"machine learning": {"ml", "artificial intelligence", "ai"},
	"data science":     {"data analysis", "analytics"},
	"pandas":           {"python pandas"},
	"scikit-learn":     {"sklearn", "scikit learn"},
	"tensorflow":       {"tf"},
	"pytorch":          {"torch"},

	// Tools and practices
	"git":        {"version control", "github", "gitlab"},
	"docker":     {"containerization", "containers"},
	"kubernetes": {"k8s", "container orchestration"},
	"agile":      {"scrum", "kanban"},
	"devops":     {"ci/cd", "continuous integration"},
}

// skillCategories groups skills for reporting and fixture generation.
var skillCategories = map[string][]string{
	"programming":      {"python", "javascript", "java", "c++", "c#", "go", "rust", "ruby", "php"},
	"web_frontend":     {"react", "angular", "vue", "html", "css", "typescript"},
	"web_backend":      {"node.js", "django", "flask", "spring", "express"},
	"databases":        {"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch"},
	"cloud":            {"aws", "gcp", "azure", "docker", "kubernetes", "terraform"},
	"data_science":     {"pandas", "numpy", "scikit-learn", "matplotlib", "jupyter"},
	"machine_learning": {"tensorflow", "pytorch", "keras", "machine learning", "deep learning"},
	"mobile":           {"ios", "android", "react native", "flutter", "swift", "kotlin"},
}

// learningPaths holds curated three-step suggestions for frequently missing
// skills. Skills not listed here get a generic template instead.
var learningPaths = map[string][]string{
	"python":           {"Complete Python course", "Practice on HackerRank", "Build Python projects"},
	"javascript":       {"Learn ES6+ features", "Practice DOM manipulation", "Build web applications"},
	"react":            {"Complete React tutorial", "Build a portfolio website", "Learn React hooks"},
	"sql":              {"Practice on SQLBolt", "Learn database design", "Work with real datasets"},
	"machine learning": {"Take ML course", "Practice on Kaggle", "Implement ML algorithms"},
	"aws":              {"Get AWS certification", "Practice with free tier", "Build cloud projects"},
	"docker":           {"Learn containerization basics", "Practice with Docker Hub", "Deploy applications"},
	"git":              {"Learn Git commands", "Practice with GitHub", "Contribute to open source"},
}

// buildSynonymIndex expands groups into a symmetric member->members index.
// A member of several groups (e.g. "javascript") sees the union.
func buildSynonymIndex(groups map[string][]string) map[string]map[string]struct{} {
	index := make(map[string]map[string]struct{}, len(groups)*2)
	link := func(a, b string) {
		if a == b {
			return
		}
		if index[a] == nil {
			index[a] = make(map[string]struct{})
		}
		index[a][b] = struct{}{}
	}
	for canonical, aliases := range groups {
		members := append([]string{canonical}, aliases...)
		for _, a := range members {
			for _, b := range members {
				link(a, b)
			}
		}
	}
	return index
}
