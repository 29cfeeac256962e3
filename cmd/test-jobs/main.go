// Command test-jobs exercises a running recommendation service end to end:
// it generates synthetic postings, submits them concurrently, waits for
// ingestion, requests recommendations and verifies the ranked output.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/jobrec/internal/testjobs"
	"github.com/okian/jobrec/pkg/logger"
)

const (
	defaultBaseURL = "http://localhost:9080"
	defaultNumJobs = 10000
	defaultTopK    = 50
	defaultWorkers = 10
	defaultTimeout = 30 * time.Second
)

func main() {
	cfg := &testjobs.Config{}

	root := &cobra.Command{
		Use:   "test-jobs",
		Short: "Load-test a running job recommendation service",
		Long: `test-jobs generates synthetic job postings, submits them to a running
recommendation service, waits for ingestion, then requests and verifies
ranked recommendations against a generated candidate profile.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.NumJobs <= 0 {
				return fmt.Errorf("jobs must be positive, got %d", cfg.NumJobs)
			}
			if cfg.Workers <= 0 {
				return fmt.Errorf("workers must be positive, got %d", cfg.Workers)
			}
			if cfg.TopK < 0 {
				return fmt.Errorf("top must be non-negative, got %d", cfg.TopK)
			}

			if err := testjobs.SetupLogging(cfg.LogFile); err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			if cfg.Verbose {
				_ = logger.SetLevelString("debug")
			}

			return testjobs.Run(cmd.Context(), cfg)
		},
	}

	root.Flags().StringVar(&cfg.BaseURL, "url", defaultBaseURL, "base URL of the service")
	root.Flags().IntVar(&cfg.NumJobs, "jobs", defaultNumJobs, "number of postings to generate and submit")
	root.Flags().IntVar(&cfg.TopK, "top", defaultTopK, "number of recommendations to request")
	root.Flags().IntVar(&cfg.Workers, "workers", defaultWorkers, "number of concurrent submission workers")
	root.Flags().DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	root.Flags().StringVar(&cfg.OutputFile, "output", "", "optional file to save generated postings as JSON")
	root.Flags().StringVar(&cfg.LogFile, "log", "", "log file path (timestamped default when empty)")
	root.Flags().BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
