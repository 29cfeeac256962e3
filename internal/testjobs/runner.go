package testjobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/okian/jobrec/pkg/logger"
)

// Run executes the complete ingestion and recommendation test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}
	client := NewHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate postings
	jobs, err := generateJobs(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("posting generation failed: %w", err)
	}

	// Step 3: Save postings to file if requested
	if config.OutputFile != "" {
		if err := saveJobsToFile(ctx, jobs, config.OutputFile); err != nil {
			logger.Get().Warn(ctx, "failed to save postings to file", logger.Error(err))
		}
	}

	// Step 4: Submit postings
	if err := submitJobs(ctx, client, jobs, config, stats); err != nil {
		return fmt.Errorf("posting submission failed: %w", err)
	}

	// Step 5: Wait for ingestion to drain the queue
	logger.Get().Info(ctx, "waiting for ingestion", logger.Duration("delay", ProcessingDelay))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(ProcessingDelay):
	}

	catalogSize, err := retrieveCatalogSize(ctx, client)
	if err != nil {
		logger.Get().Warn(ctx, "failed to read catalog size", logger.Error(err))
	} else {
		stats.CatalogSize = catalogSize
		logger.Get().Info(ctx, "catalog populated", logger.Int("size", catalogSize))
	}

	// Step 6: Retrieve recommendations
	recs, err := retrieveRecommendations(ctx, client, config, stats)
	if err != nil {
		return fmt.Errorf("recommendation retrieval failed: %w", err)
	}

	// Step 7: Verify recommendations
	if err := verifyRecommendations(ctx, recs, config); err != nil {
		return fmt.Errorf("recommendation verification failed: %w", err)
	}

	// Step 8: Display final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	return nil
}

// checkServiceHealth verifies the service is reachable.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("health endpoint unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveJobsToFile writes the generated postings to a JSON file.
func saveJobsToFile(ctx context.Context, jobs []Job, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(jobs); err != nil {
		return fmt.Errorf("failed to encode postings: %w", err)
	}

	logger.Get().Info(ctx, "saved postings to file",
		logger.String("file", filename),
		logger.Int("count", len(jobs)))
	return nil
}

// displayFinalStats logs the final test statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	acceptRate := float64(0)
	if stats.JobsSubmitted > 0 {
		acceptRate = float64(stats.JobsAccepted) / float64(stats.JobsSubmitted) * PercentageMultiplier
	}

	logger.Get().Info(ctx, "test completed",
		logger.Int("generated", stats.JobsGenerated),
		logger.Int("submitted", stats.JobsSubmitted),
		logger.Int("accepted", stats.JobsAccepted),
		logger.Int("rejected", stats.JobsRejected),
		logger.Int("failed", stats.JobsFailed),
		logger.Float64("acceptRatePct", acceptRate),
		logger.Int("catalogSize", stats.CatalogSize),
		logger.Int("recommendations", stats.Recommendations),
		logger.Duration("duration", stats.Duration))
}
