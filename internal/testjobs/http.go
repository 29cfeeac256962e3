package testjobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/jobrec/pkg/logger"
)

// HTTPClient wraps http.Client with common functionality
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Post performs a POST request with JSON payload
func (c *HTTPClient) Post(ctx context.Context, endpoint string, payload interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform POST request: %w", err)
	}

	return resp, nil
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform GET request: %w", err)
	}

	return resp, nil
}

// submitJobs submits postings to the ingestion endpoint using a worker pool.
// A 429 counts as rejected, not failed; the bounded queue sheds load under
// backpressure and that is expected behavior.
func submitJobs(ctx context.Context, client *HTTPClient, jobs []Job, config *Config, stats *Stats) error {
	logger.Get().Info(ctx, "submitting postings", logger.Int("count", len(jobs)), logger.Int("workers", config.Workers))

	jobChan := make(chan Job, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	var accepted, rejected, failed int64

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
					switch submitSingleJob(ctx, client, job) {
					case StatusAccepted:
						atomic.AddInt64(&accepted, 1)
					case StatusTooManyRequests:
						atomic.AddInt64(&rejected, 1)
					default:
						atomic.AddInt64(&failed, 1)
					}
				}
			}
		}(i)
	}

	// Send postings to workers
	go func() {
		defer close(jobChan)
		for i, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobChan <- job:
				// Progress reporting
				if (i+1)%100 == 0 || i == len(jobs)-1 {
					progress := float64(i+1) / float64(len(jobs)) * PercentageMultiplier
					logger.Get().Info(ctx, "submission progress",
						logger.Int("submitted", i+1),
						logger.Int("total", len(jobs)),
						logger.Float64("percentage", progress))
				}
			}
		}
	}()

	wg.Wait()

	stats.JobsSubmitted = len(jobs)
	stats.JobsAccepted = int(atomic.LoadInt64(&accepted))
	stats.JobsRejected = int(atomic.LoadInt64(&rejected))
	stats.JobsFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "submission complete",
		logger.Int("accepted", stats.JobsAccepted),
		logger.Int("rejected", stats.JobsRejected),
		logger.Int("failed", stats.JobsFailed))

	if stats.JobsAccepted == 0 {
		return fmt.Errorf("no postings were accepted out of %d submitted", len(jobs))
	}

	return nil
}

// submitSingleJob submits one posting and returns the HTTP status code.
func submitSingleJob(ctx context.Context, client *HTTPClient, job Job) int {
	resp, err := client.Post(ctx, "/api/v1/jobs", job)
	if err != nil {
		logger.Get().Warn(ctx, "failed to submit posting", logger.String("jobID", job.ID), logger.Error(err))
		return 0
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != StatusAccepted && resp.StatusCode != StatusTooManyRequests {
		logger.Get().Warn(ctx, "unexpected status submitting posting",
			logger.String("jobID", job.ID),
			logger.Int("status", resp.StatusCode))
	}

	return resp.StatusCode
}
