package recommend

import (
	"sort"

	"github.com/okian/jobrec/internal/domain/types"
)

// Rank orders recommendations by overall score descending and truncates to
// topK. The sort is stable: equal scores keep their input order, so callers
// feeding postings in recency order get recency as the tie-breaker. A topK
// of zero or less, or one beyond the candidate count, returns the full set.
// The input slice is not modified; ranks are assigned 1-based on the result.
func Rank(recs []types.Recommendation, topK int) []types.Recommendation {
	ranked := make([]types.Recommendation, len(recs))
	copy(ranked, recs)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Scores.Overall > ranked[j].Scores.Overall
	})

	if topK > 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
