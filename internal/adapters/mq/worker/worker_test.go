package worker_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/jobrec/internal/adapters/mq/queue"
	worker "github.com/okian/jobrec/internal/adapters/mq/worker"
	model "github.com/okian/jobrec/internal/domain/model"
	logging "github.com/okian/jobrec/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	jobChan    chan queue.Job
	closeError error
	closeOnce  sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		jobChan: make(chan queue.Job, 10),
	}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan queue.Job {
	return mq.jobChan
}

func (mq *mockQueue) Close() error {
	mq.closeOnce.Do(func() {
		close(mq.jobChan)
	})
	return mq.closeError
}

func (mq *mockQueue) addJob(job queue.Job) {
	mq.jobChan <- job
}

type mockCatalog struct {
	jobs   map[string]model.JobPosting
	fail   bool
	counts int
	mu     sync.RWMutex
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		jobs: make(map[string]model.JobPosting),
	}
}

func (mc *mockCatalog) Upsert(ctx context.Context, job model.JobPosting) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.fail {
		return false, errors.New("catalog unavailable")
	}

	_, exists := mc.jobs[job.ID]
	mc.jobs[job.ID] = job
	mc.counts++
	return !exists, nil
}

func (mc *mockCatalog) setFail(fail bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.fail = fail
}

func (mc *mockCatalog) upsertCount() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.counts
}

// byTitle finds a stored posting by title, since IDs are worker-assigned.
func (mc *mockCatalog) byTitle(title string) (model.JobPosting, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	for _, job := range mc.jobs {
		if job.Title == title {
			return job, true
		}
	}
	return model.JobPosting{}, false
}

type mockDeduper struct {
	seen map[string]bool
	mu   sync.Mutex
}

func newMockDeduper() *mockDeduper {
	return &mockDeduper{seen: make(map[string]bool)}
}

func (md *mockDeduper) SeenAndRecord(ctx context.Context, fp string) bool {
	md.mu.Lock()
	defer md.mu.Unlock()
	if md.seen[fp] {
		return true
	}
	md.seen[fp] = true
	return false
}

func (md *mockDeduper) Unrecord(ctx context.Context, fp string) {
	md.mu.Lock()
	defer md.mu.Unlock()
	delete(md.seen, fp)
}

func (md *mockDeduper) Size() int64 {
	md.mu.Lock()
	defer md.mu.Unlock()
	return int64(len(md.seen))
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new ingest worker", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		catalog := newMockCatalog()
		deduper := newMockDeduper()

		convey.Convey("When creating a worker with default options", func() {
			w := worker.NewInMemoryWorker(q, catalog, deduper)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When creating a worker with custom options", func() {
			w := worker.NewInMemoryWorker(
				q, catalog, deduper,
				worker.WithName("ingest-worker"),
			)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			w := worker.NewInMemoryWorker(q, catalog, deduper)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go w.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			convey.Convey("And a posting without an ID arrives", func() {
				q.addJob(model.JobPosting{
					Title:          "Backend Engineer",
					Company:        "Acme",
					Location:       "Remote",
					RequiredSkills: []string{" Python ", "JS", ""},
				})
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the posting lands in the catalog with an assigned ID and normalized skills", func() {
					stored, ok := catalog.byTitle("Backend Engineer")
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(stored.ID, convey.ShouldNotBeEmpty)
					convey.So(stored.RequiredSkills, convey.ShouldResemble, []string{"python", "javascript"})
				})

				convey.Convey("Then a posted date is stamped", func() {
					stored, ok := catalog.byTitle("Backend Engineer")
					convey.So(ok, convey.ShouldBeTrue)
					_, parsed := stored.PostedTime()
					convey.So(parsed, convey.ShouldBeTrue)
				})
			})

			convey.Convey("And the same opening arrives twice", func() {
				posting := model.JobPosting{
					Title:    "Data Engineer",
					Company:  "Initech",
					Location: "Austin, TX",
				}
				q.addJob(posting)
				q.addJob(posting)
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then only the first submission reaches the catalog", func() {
					convey.So(catalog.upsertCount(), convey.ShouldEqual, 1)
					convey.So(deduper.Size(), convey.ShouldEqual, 1)
				})
			})

			convey.Convey("And the catalog fails", func() {
				catalog.setFail(true)
				posting := model.JobPosting{
					Title:    "SRE",
					Company:  "Globex",
					Location: "Remote",
				}
				q.addJob(posting)
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the fingerprint is released for retry", func() {
					convey.So(deduper.Size(), convey.ShouldEqual, 0)

					catalog.setFail(false)
					q.addJob(posting)
					time.Sleep(50 * time.Millisecond)

					_, ok := catalog.byTitle("SRE")
					convey.So(ok, convey.ShouldBeTrue)
				})
			})

			convey.Convey("And when shutting down", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer shutdownCancel()

				err := w.Shutdown(shutdownCtx)

				convey.Convey("Then it should shutdown gracefully", func() {
					convey.So(err, convey.ShouldBeNil)
				})
			})
		})

		convey.Convey("When a posting keeps its submitted ID and posted date", func() {
			w := worker.NewInMemoryWorker(q, catalog, deduper)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go w.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			q.addJob(model.JobPosting{
				ID:       "ext-42",
				Title:    "ML Engineer",
				Company:  "Hooli",
				PostedAt: "2026-08-01",
			})
			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then neither field is rewritten", func() {
				stored, ok := catalog.byTitle("ML Engineer")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(stored.ID, convey.ShouldEqual, "ext-42")
				convey.So(stored.PostedAt, convey.ShouldEqual, "2026-08-01")
			})
		})
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a new worker pool", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		catalog := newMockCatalog()
		deduper := newMockDeduper()

		convey.Convey("When creating a pool with default count", func() {
			pool := worker.NewPool(0, q, catalog, deduper)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(pool, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When creating a pool with custom count", func() {
			pool := worker.NewPool(3, q, catalog, deduper)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(pool, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When starting a pool", func() {
			pool := worker.NewPool(2, q, catalog, deduper)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pool.Start(ctx)
			time.Sleep(20 * time.Millisecond)

			convey.Convey("And several distinct postings arrive", func() {
				postings := []model.JobPosting{
					{Title: "Backend Engineer", Company: "Acme", Location: "NYC"},
					{Title: "Frontend Engineer", Company: "Acme", Location: "NYC"},
					{Title: "Data Scientist", Company: "Initech", Location: "Remote"},
				}
				for _, p := range postings {
					q.addJob(p)
				}
				time.Sleep(100 * time.Millisecond)

				convey.Convey("Then every posting is ingested once", func() {
					convey.So(catalog.upsertCount(), convey.ShouldEqual, len(postings))
					for _, p := range postings {
						_, ok := catalog.byTitle(p.Title)
						convey.So(ok, convey.ShouldBeTrue)
					}
				})
			})

			convey.Convey("And when shutting down", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
				defer shutdownCancel()

				err := pool.Shutdown(shutdownCtx)

				convey.Convey("Then it should shutdown gracefully", func() {
					convey.So(err, convey.ShouldBeNil)
				})
			})
		})

		convey.Convey("When stopping a pool without draining", func() {
			pool := worker.NewPool(2, q, catalog, deduper)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pool.Start(ctx)
			time.Sleep(20 * time.Millisecond)

			convey.Convey("Then Stop returns without hanging", func() {
				done := make(chan struct{})
				go func() {
					pool.Stop()
					close(done)
				}()

				select {
				case <-done:
					convey.So(true, convey.ShouldBeTrue)
				case <-time.After(2 * time.Second):
					convey.So("Stop hung", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestWorkerSkillNormalization(t *testing.T) {
	convey.Convey("Given postings with messy skill lists", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		catalog := newMockCatalog()

		w := worker.NewInMemoryWorker(q, catalog, newMockDeduper())
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go w.Run(ctx)
		time.Sleep(10 * time.Millisecond)

		convey.Convey("When skills carry casing, whitespace and abbreviations", func() {
			q.addJob(model.JobPosting{
				Title:          "Platform Engineer",
				Company:        "Umbrella",
				RequiredSkills: []string{"Python!", "  ML  ", "Node.js", strings.ToUpper("docker")},
			})
			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then stored skills are canonical", func() {
				stored, ok := catalog.byTitle("Platform Engineer")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(stored.RequiredSkills, convey.ShouldResemble,
					[]string{"python", "machine learning", "node.js", "docker"})
			})
		})
	})
}
