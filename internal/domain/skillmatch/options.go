package skillmatch

// Option applies a configuration option to the InMemoryMatcher.
type Option func(*InMemoryMatcher)

// WithFuzzyThreshold sets the minimum similarity ratio for fuzzy matches.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *InMemoryMatcher) {
		if threshold > 0 && threshold <= 1 {
			m.fuzzyThreshold = threshold
		}
	}
}

// WithSynonymScore sets the score recorded for synonym matches.
func WithSynonymScore(score float64) Option {
	return func(m *InMemoryMatcher) {
		if score > 0 && score <= 1 {
			m.synonymScore = score
		}
	}
}

// WithSynonyms merges extra synonym groups into the built-in table.
// Keys and aliases should already be in normalized form.
func WithSynonyms(groups map[string][]string) Option {
	return func(m *InMemoryMatcher) {
		if len(groups) == 0 {
			return
		}
		if m.extraGroups == nil {
			m.extraGroups = make(map[string][]string, len(groups))
		}
		for canonical, aliases := range groups {
			m.extraGroups[canonical] = append(m.extraGroups[canonical], aliases...)
		}
	}
}

// WithLearningPaths merges extra curated learning paths, keyed by
// normalized skill name. Entries override built-ins on collision.
func WithLearningPaths(paths map[string][]string) Option {
	return func(m *InMemoryMatcher) {
		for skill, path := range paths {
			if len(path) > 0 {
				m.learningPaths[Normalize(skill)] = append([]string(nil), path...)
			}
		}
	}
}
