package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type fakeSession struct {
	closed atomic.Int32
}

func (f *fakeSession) Close() { f.closed.Add(1) }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[*fakeSession](ctx, WithIdleTimeout(0))
	defer func() { _ = store.Close() }()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	sess := &fakeSession{}
	id, err := store.Create(ctx, sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sess {
		t.Error("expected the stored session back")
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.closed.Load() != 1 {
		t.Errorf("expected session closed once, got %d", sess.closed.Load())
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryStore_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[*fakeSession](ctx, WithIdleTimeout(0), WithMaxSessions(100))
	defer func() { _ = store.Close() }()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := store.Create(ctx, &fakeSession{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestMemoryStore_Capacity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[*fakeSession](ctx, WithIdleTimeout(0), WithMaxSessions(2))
	defer func() { _ = store.Close() }()

	for i := 0; i < 2; i++ {
		if _, err := store.Create(ctx, &fakeSession{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := store.Create(ctx, &fakeSession{}); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity, got %v", err)
	}
}

func TestMemoryStore_CapacityReclaimsIdleSessions(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := NewMemoryStore[*fakeSession](ctx,
		WithIdleTimeout(time.Minute),
		WithSweepInterval(time.Hour),
		WithMaxSessions(1),
		WithClock(clock.Now),
	)
	defer func() { _ = store.Close() }()

	stale := &fakeSession{}
	if _, err := store.Create(ctx, stale); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Create(ctx, &fakeSession{}); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity while the session is live, got %v", err)
	}

	clock.Advance(2 * time.Minute)
	if _, err := store.Create(ctx, &fakeSession{}); err != nil {
		t.Fatalf("expected the idle session to make room, got %v", err)
	}
	if stale.closed.Load() != 1 {
		t.Error("expected the idle session to be closed")
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestMemoryStore_IdleExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := NewMemoryStore[*fakeSession](ctx,
		WithIdleTimeout(time.Minute),
		WithSweepInterval(time.Hour),
		WithClock(clock.Now),
	)
	defer func() { _ = store.Close() }()

	stale := &fakeSession{}
	staleID, _ := store.Create(ctx, stale)
	fresh := &fakeSession{}
	freshID, _ := store.Create(ctx, fresh)

	clock.Advance(45 * time.Second)
	if _, err := store.Get(ctx, freshID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock.Advance(30 * time.Second)

	if n := store.Sweep(ctx); n != 1 {
		t.Errorf("expected 1 eviction, got %d", n)
	}
	if stale.closed.Load() != 1 {
		t.Error("expected idle session to be closed")
	}
	if _, err := store.Get(ctx, staleID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for evicted session, got %v", err)
	}
	if fresh.closed.Load() != 0 {
		t.Error("expected touched session to survive")
	}

	clock.Advance(2 * time.Minute)
	if _, err := store.Get(ctx, freshID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected lazy expiry on Get, got %v", err)
	}
	if fresh.closed.Load() != 1 {
		t.Error("expected lazily expired session to be closed")
	}
}

func TestMemoryStore_CloseReleasesEverything(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	store := NewMemoryStore[*fakeSession](ctx,
		WithIdleTimeout(time.Minute),
		WithSweepInterval(time.Millisecond),
	)

	sessions := []*fakeSession{{}, {}, {}}
	for _, s := range sessions {
		if _, err := store.Create(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
	for i, s := range sessions {
		if s.closed.Load() != 1 {
			t.Errorf("session %d closed %d times", i, s.closed.Load())
		}
	}
	if _, err := store.Create(ctx, &fakeSession{}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[*fakeSession](ctx, WithIdleTimeout(0), WithMaxSessions(1000))
	defer func() { _ = store.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				id, err := store.Create(ctx, &fakeSession{})
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if _, err := store.Get(ctx, id); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if j%2 == 0 {
					_ = store.Delete(ctx, id)
				}
			}
		}()
	}
	wg.Wait()

	if count := store.Count(ctx); count != 100 {
		t.Errorf("expected 100 sessions, got %d", count)
	}
}
