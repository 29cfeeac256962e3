package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"
)

func seedStore(b *testing.B, store *TreapStore, n int) {
	b.Helper()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		day := base.AddDate(0, 0, rng.Intn(365)).Format("2006-01-02")
		if _, err := store.Upsert(ctx, posting(fmt.Sprintf("job%d", i), "Role", day)); err != nil {
			b.Fatalf("seed upsert failed: %v", err)
		}
	}
}

func BenchmarkTreapStore_Upsert(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		day := base.AddDate(0, 0, i%365).Format("2006-01-02")
		if _, err := store.Upsert(ctx, posting(fmt.Sprintf("job%d", i), "Role", day)); err != nil {
			b.Fatalf("upsert failed: %v", err)
		}
	}
}

func BenchmarkTreapStore_Recent(b *testing.B) {
	for _, size := range []int{1000, 10000, 100000} {
		b.Run(fmt.Sprintf("catalog_%d", size), func(b *testing.B) {
			ctx := context.Background()
			store := NewTreapStore(ctx)
			defer store.Close()
			seedStore(b, store, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := store.Recent(ctx, 50); err != nil {
					b.Fatalf("recent failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkTreapStore_Get(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()
	seedStore(b, store, 10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.Get(ctx, fmt.Sprintf("job%d", i%10000)); err != nil {
			b.Fatalf("get failed: %v", err)
		}
	}
}

func BenchmarkTreapStore_MixedReadWrite(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()
	seedStore(b, store, 10000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			if rng.Intn(10) < 3 {
				day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).
					AddDate(0, 0, rng.Intn(365)).Format("2006-01-02")
				store.Upsert(ctx, posting(fmt.Sprintf("job%d", rng.Intn(20000)), "Role", day))
			} else {
				store.Recent(ctx, 20)
			}
		}
	})
}
