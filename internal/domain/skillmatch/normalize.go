package skillmatch

import (
	"regexp"
	"strings"
)

// nonSkillChars strips punctuation that carries no meaning in skill names.
// "+", "#" and "." survive so c++, c# and node.js stay intact.
var nonSkillChars = regexp.MustCompile(`[^\w\s+#.]`)

// abbreviations expand well-known shorthand on word boundaries only, so
// "json" is untouched while a standalone "js" becomes "javascript".
var abbreviations = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\bjs\b`), "javascript"},
	{regexp.MustCompile(`\bml\b`), "machine learning"},
	{regexp.MustCompile(`\bai\b`), "artificial intelligence"},
}

// Normalize canonicalizes a skill string for comparison: lowercase, trim,
// strip punctuation except + # ., and expand standalone abbreviations.
func Normalize(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	s = nonSkillChars.ReplaceAllString(s, "")
	for _, abbr := range abbreviations {
		s = abbr.pattern.ReplaceAllString(s, abbr.replacement)
	}
	return strings.TrimSpace(s)
}
