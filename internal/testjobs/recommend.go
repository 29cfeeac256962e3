package testjobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okian/jobrec/pkg/logger"
)

// recommendRequest is the payload for the recommendations endpoint
type recommendRequest struct {
	Profile Profile `json:"profile"`
	TopK    int     `json:"top_k"`
}

// retrieveRecommendations scores the ingested catalog against a generated
// profile and returns the ranked result.
func retrieveRecommendations(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) ([]Recommendation, error) {
	profile := generateProfile()
	logger.Get().Info(ctx, "requesting recommendations",
		logger.Int("topK", config.TopK),
		logger.Any("skills", profile.Skills))

	resp, err := client.Post(ctx, "/api/v1/recommendations", recommendRequest{Profile: profile, TopK: config.TopK})
	if err != nil {
		return nil, fmt.Errorf("failed to request recommendations: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("recommendations endpoint returned status %d", resp.StatusCode)
	}

	var envelope recommendationResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	stats.Recommendations = envelope.Count
	logger.Get().Info(ctx, "received recommendations", logger.Int("count", envelope.Count))

	return envelope.Recommendations, nil
}

// retrieveCatalogSize reads the current catalog size from the stats endpoint.
func retrieveCatalogSize(ctx context.Context, client *HTTPClient) (int, error) {
	resp, err := client.Get(ctx, "/stats")
	if err != nil {
		return 0, fmt.Errorf("failed to request stats: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != StatusOK {
		return 0, fmt.Errorf("stats endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		TotalJobs int `json:"totalJobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode stats: %w", err)
	}

	return payload.TotalJobs, nil
}
