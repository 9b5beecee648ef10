package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/nexera/pkg/metrics"
)

type entry[T Closer] struct {
	value    T
	lastSeen time.Time
}

// MemoryStore is a map-backed Store with idle eviction.
type MemoryStore[T Closer] struct {
	mu       sync.Mutex
	sessions map[string]*entry[T]
	closed   bool
	opts     options

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewMemoryStore constructs a store and starts its janitor when idle eviction
// is enabled. The janitor stops when ctx is done or Close is called.
func NewMemoryStore[T Closer](ctx context.Context, opts ...Option) *MemoryStore[T] {
	o := options{
		idleTimeout:   15 * time.Minute,
		sweepInterval: 30 * time.Second,
		maxSessions:   1000,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &MemoryStore[T]{
		sessions: make(map[string]*entry[T]),
		opts:     o,
		stopChan: make(chan struct{}),
	}
	if o.idleTimeout > 0 {
		s.startJanitor(ctx)
	}
	metrics.UpdateActiveSessions(0)
	return s
}

func (s *MemoryStore[T]) startJanitor(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.opts.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Create implements Store.Create.
func (s *MemoryStore[T]) Create(_ context.Context, v T) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}
	if len(s.sessions) >= s.opts.maxSessions && s.sweepLocked() == 0 {
		return "", ErrCapacity
	}

	id := uuid.NewString()
	s.sessions[id] = &entry[T]{value: v, lastSeen: s.opts.now()}

	metrics.RecordSessionCreated()
	metrics.UpdateActiveSessions(len(s.sessions))
	return id, nil
}

// Get implements Store.Get.
func (s *MemoryStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, ok := s.sessions[id]
	if !ok {
		return zero, ErrNotFound
	}
	now := s.opts.now()
	if s.expired(e, now) {
		s.evictLocked(id, e)
		metrics.RecordSessionExpired()
		return zero, ErrNotFound
	}
	e.lastSeen = now
	return e.value, nil
}

// Delete implements Store.Delete.
func (s *MemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.evictLocked(id, e)
	return nil
}

// Count implements Store.Count.
func (s *MemoryStore[T]) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts every idle session and returns how many were removed.
func (s *MemoryStore[T]) Sweep(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

// sweepLocked must be called with s.mu held.
func (s *MemoryStore[T]) sweepLocked() int {
	now := s.opts.now()
	n := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			s.evictLocked(id, e)
			metrics.RecordSessionExpired()
			n++
		}
	}
	return n
}

// Close stops the janitor and closes every remaining session.
func (s *MemoryStore[T]) Close() error {
	select {
	case <-s.stopChan:
		return nil
	default:
		close(s.stopChan)
	}
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.sessions {
		s.evictLocked(id, e)
	}
	s.closed = true
	return nil
}

func (s *MemoryStore[T]) expired(e *entry[T], now time.Time) bool {
	return s.opts.idleTimeout > 0 && now.Sub(e.lastSeen) > s.opts.idleTimeout
}

// evictLocked must be called with s.mu held.
func (s *MemoryStore[T]) evictLocked(id string, e *entry[T]) {
	delete(s.sessions, id)
	e.value.Close()
	metrics.UpdateActiveSessions(len(s.sessions))
}
