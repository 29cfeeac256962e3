package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/okian/jobrec/internal/domain/model"
)

func posting(id, title, posted string) model.JobPosting {
	return model.JobPosting{
		ID:       id,
		Title:    title,
		Company:  "Acme",
		PostedAt: posted,
	}
}

func TestTreapStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	inserted, err := store.Upsert(ctx, posting("job1", "Backend Engineer", "2026-08-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted {
		t.Error("expected first upsert to insert")
	}

	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	got, err := store.Get(ctx, "job1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Backend Engineer" {
		t.Errorf("expected Backend Engineer, got %s", got.Title)
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("expected 1 posting, got %d", len(recent))
	}
	if recent[0].ID != "job1" {
		t.Errorf("expected job1, got %s", recent[0].ID)
	}
}

func TestTreapStore_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	if inserted, _ := store.Upsert(ctx, posting("job1", "Backend Engineer", "2026-08-01")); !inserted {
		t.Error("expected insert on first upsert")
	}

	// Same ID again: replacement, not insertion.
	inserted, err := store.Upsert(ctx, posting("job1", "Senior Backend Engineer", "2026-08-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted {
		t.Error("expected replacement, not insertion")
	}

	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	got, err := store.Get(ctx, "job1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Senior Backend Engineer" {
		t.Errorf("expected replacement title, got %s", got.Title)
	}
}

func TestTreapStore_UpsertReordersOnNewDate(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	store.Upsert(ctx, posting("old", "Old Role", "2026-01-01"))
	store.Upsert(ctx, posting("new", "New Role", "2026-08-01"))

	recent, _ := store.Recent(ctx, 2)
	if recent[0].ID != "new" {
		t.Fatalf("expected new first, got %s", recent[0].ID)
	}

	// Reposting the old job with a fresher date moves it to the front.
	store.Upsert(ctx, posting("old", "Old Role", "2026-08-15"))

	recent, _ = store.Recent(ctx, 2)
	if recent[0].ID != "old" {
		t.Errorf("expected old first after repost, got %s", recent[0].ID)
	}
}

func TestTreapStore_Ordering(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	store.Upsert(ctx, posting("c", "Role C", "2026-08-03"))
	store.Upsert(ctx, posting("a", "Role A", "2026-08-01"))
	store.Upsert(ctx, posting("b", "Role B", "2026-08-02"))

	recent, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"c", "b", "a"}
	for i, want := range wantOrder {
		if recent[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, recent[i].ID)
		}
	}
}

func TestTreapStore_TiesBreakByID(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	// All posted the same day; order must be ID ascending.
	store.Upsert(ctx, posting("zeta", "Role Z", "2026-08-01"))
	store.Upsert(ctx, posting("alpha", "Role A", "2026-08-01"))
	store.Upsert(ctx, posting("mike", "Role M", "2026-08-01"))

	recent, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"alpha", "mike", "zeta"}
	for i, want := range wantOrder {
		if recent[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, recent[i].ID)
		}
	}
}

func TestTreapStore_RecentLimit(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	for i := 0; i < 10; i++ {
		day := fmt.Sprintf("2026-08-%02d", i+1)
		store.Upsert(ctx, posting(fmt.Sprintf("job%d", i), "Role", day))
	}

	recent, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("expected 3 postings, got %d", len(recent))
	}
	if recent[0].ID != "job9" {
		t.Errorf("expected job9 (newest) first, got %s", recent[0].ID)
	}

	// Limit larger than the catalog returns everything.
	recent, err = store.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 10 {
		t.Errorf("expected 10 postings, got %d", len(recent))
	}
}

func TestTreapStore_InvalidLimit(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	for _, n := range []int{0, -1, -100} {
		if _, err := store.Recent(ctx, n); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("Recent(%d): expected ErrInvalidLimit, got %v", n, err)
		}
	}
}

func TestTreapStore_GetNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	if _, err := store.Get(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTreapStore_All(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	for i := 0; i < 5; i++ {
		day := fmt.Sprintf("2026-08-%02d", i+1)
		store.Upsert(ctx, posting(fmt.Sprintf("job%d", i), "Role", day))
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 postings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		prev, _ := all[i-1].PostedTime()
		cur, _ := all[i].PostedTime()
		if cur.After(prev) {
			t.Errorf("postings out of order at %d: %v after %v", i, cur, prev)
		}
	}
}

func TestTreapStore_MissingDateSortsByArrival(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	// No posted date: the store keys it by arrival time, which is "now" and
	// therefore newer than any backdated posting.
	store.Upsert(ctx, posting("dated", "Dated Role", "2020-01-01"))
	store.Upsert(ctx, model.JobPosting{ID: "undated", Title: "Undated Role", Company: "Acme"})

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recent[0].ID != "undated" {
		t.Errorf("expected undated (arrival-keyed) first, got %s", recent[0].ID)
	}
}

func TestTreapStore_Stats(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx, WithSnapshotInterval(10*time.Millisecond))
	defer store.Close()

	jobs := []model.JobPosting{
		{ID: "j1", Title: "A", Company: "Acme", Source: "indeed", ExperienceLevel: "senior", PostedAt: "2026-08-01"},
		{ID: "j2", Title: "B", Company: "Acme", Source: "indeed", ExperienceLevel: "mid", PostedAt: "2026-08-02"},
		{ID: "j3", Title: "C", Company: "Acme", Source: "linkedin", ExperienceLevel: "senior", PostedAt: "2026-08-03"},
	}
	for _, j := range jobs {
		store.Upsert(ctx, j)
	}

	// Stats builds synchronously when no snapshot has been published yet,
	// and periodically afterwards.
	stats := store.Stats(ctx)
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.BySource["indeed"] != 2 {
		t.Errorf("expected 2 indeed postings, got %d", stats.BySource["indeed"])
	}
	if stats.BySource["linkedin"] != 1 {
		t.Errorf("expected 1 linkedin posting, got %d", stats.BySource["linkedin"])
	}
	if stats.ByLevel["senior"] != 2 {
		t.Errorf("expected 2 senior postings, got %d", stats.ByLevel["senior"])
	}
	if stats.NewestPosted.Format("2006-01-02") != "2026-08-03" {
		t.Errorf("expected newest 2026-08-03, got %v", stats.NewestPosted)
	}

	// The periodic publisher picks up later writes.
	store.Upsert(ctx, model.JobPosting{ID: "j4", Title: "D", Company: "Acme", Source: "linkedin", PostedAt: "2026-08-04"})
	time.Sleep(50 * time.Millisecond)

	stats = store.Stats(ctx)
	if stats.Total != 4 {
		t.Errorf("expected total 4 after publish, got %d", stats.Total)
	}
}

func TestTreapStore_SnapshotRecentCache(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx,
		WithSnapshotInterval(10*time.Millisecond),
		WithRecentCacheSize(2),
	)
	defer store.Close()

	for i := 0; i < 5; i++ {
		day := fmt.Sprintf("2026-08-%02d", i+1)
		store.Upsert(ctx, posting(fmt.Sprintf("job%d", i), "Role", day))
	}
	time.Sleep(50 * time.Millisecond)

	snap := store.snapshot.Load()
	if snap == nil {
		t.Fatal("expected a published snapshot")
	}
	if len(snap.RecentCache) != 2 {
		t.Fatalf("expected cache of 2, got %d", len(snap.RecentCache))
	}
	if snap.RecentCache[0].ID != "job4" {
		t.Errorf("expected job4 first in cache, got %s", snap.RecentCache[0].ID)
	}
}

func TestTreapStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	const writers = 8
	const perWriter = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(w)))
			for i := 0; i < perWriter; i++ {
				day := fmt.Sprintf("2026-%02d-%02d", rng.Intn(12)+1, rng.Intn(28)+1)
				id := fmt.Sprintf("w%d-job%d", w, i)
				if _, err := store.Upsert(ctx, posting(id, "Role", day)); err != nil {
					t.Errorf("upsert failed: %v", err)
					return
				}
			}
		}(w)
	}

	// Concurrent readers while writes are in flight.
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if _, err := store.Recent(ctx, 10); err != nil {
					t.Errorf("recent failed: %v", err)
					return
				}
				store.Count(ctx)
			}
		}()
	}

	wg.Wait()

	if count := store.Count(ctx); count != writers*perWriter {
		t.Errorf("expected %d postings, got %d", writers*perWriter, count)
	}

	// Full ordering must hold after concurrent writes.
	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(all); i++ {
		prev, _ := all[i-1].PostedTime()
		cur, _ := all[i].PostedTime()
		if cur.After(prev) {
			t.Fatalf("ordering violated at %d", i)
		}
	}
}

func TestTreapStore_CloseIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)

	if err := store.Close(); err != nil {
		t.Errorf("unexpected error on close: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("unexpected error on second close: %v", err)
	}
}

func TestTreapStore_ContextCancellation(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Upsert(canceled, posting("job1", "Role", "2026-08-01")); err == nil {
		t.Error("expected error from canceled context")
	}
	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0 after canceled upsert, got %d", count)
	}
}
