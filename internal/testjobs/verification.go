package testjobs

import (
	"context"
	"fmt"

	"github.com/okian/jobrec/pkg/logger"
)

// Constants for verification display.
const (
	topPerformersCount = 5
	scoreMin           = 0
	scoreMax           = 100
)

// verifyRecommendations checks ordering, rank numbering and score bounds of
// the returned recommendations.
func verifyRecommendations(ctx context.Context, recs []Recommendation, config *Config) error {
	logger.Get().Info(ctx, "verifying recommendations", logger.Int("count", len(recs)))

	if len(recs) == 0 {
		return fmt.Errorf("no recommendations returned")
	}

	if config.TopK > 0 && len(recs) > config.TopK {
		return fmt.Errorf("received %d recommendations, expected at most %d", len(recs), config.TopK)
	}

	for i, rec := range recs {
		if rec.Rank != i+1 {
			return fmt.Errorf("rank mismatch at position %d: got rank %d", i, rec.Rank)
		}
		if rec.Score.Overall < scoreMin || rec.Score.Overall > scoreMax {
			return fmt.Errorf("overall score out of bounds for %q: %.2f", rec.Job.Title, rec.Score.Overall)
		}
		if i > 0 && recs[i-1].Score.Overall < rec.Score.Overall {
			return fmt.Errorf("ordering violation at rank %d: %.2f < %.2f",
				rec.Rank, recs[i-1].Score.Overall, rec.Score.Overall)
		}
		if rec.Explanation == "" {
			return fmt.Errorf("missing explanation at rank %d", rec.Rank)
		}
	}

	displayTopRecommendations(ctx, recs)
	logger.Get().Info(ctx, "verification passed",
		logger.Int("count", len(recs)),
		logger.Float64("averageScore", calculateAverageScore(recs)))

	return nil
}

// displayTopRecommendations logs the highest ranked postings.
func displayTopRecommendations(ctx context.Context, recs []Recommendation) {
	limit := minInt(topPerformersCount, len(recs))
	for i := 0; i < limit; i++ {
		rec := recs[i]
		logger.Get().Info(ctx, "top recommendation",
			logger.Int("rank", rec.Rank),
			logger.String("title", rec.Job.Title),
			logger.String("company", rec.Job.Company),
			logger.Float64("overall", rec.Score.Overall),
			logger.Float64("skill", rec.Score.Skill))
	}
}

// calculateAverageScore computes the mean overall score.
func calculateAverageScore(recs []Recommendation) float64 {
	if len(recs) == 0 {
		return 0
	}
	var total float64
	for _, rec := range recs {
		total += rec.Score.Overall
	}
	return total / float64(len(recs))
}
