// Package service provides the session-owning service behind the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/nexera/internal/adapters/repository"
	"github.com/okian/nexera/internal/domain/asset"
	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/pkg/logger"
	"github.com/okian/nexera/pkg/metrics"
)

// Session pairs one asset pipeline with one avatar.
type Session struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Asset     *AssetController  `json:"-"`
	Avatar    *AvatarController `json:"-"`
}

// Close cancels both pipelines.
func (s *Session) Close() {
	s.Asset.Close()
	s.Avatar.Close()
}

// Service implements the API dependencies for the training scene.
type Service struct {
	mu sync.RWMutex

	sessions *repository.MemoryStore[*Session]

	// Configuration
	assetDelay    time.Duration
	commandDelay  time.Duration
	exampleDelay  time.Duration
	idleTimeout   time.Duration
	sweepInterval time.Duration
	maxSessions   int

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAssetDelay sets the asset pipeline delay for new sessions.
func WithAssetDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.assetDelay = d
		}
	}
}

// WithCommandDelay sets the avatar command delay for new sessions.
func WithCommandDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.commandDelay = d
		}
	}
}

// WithSessionExampleDelay sets the quick-example delay for new sessions.
func WithSessionExampleDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.exampleDelay = d
		}
	}
}

// WithIdleTimeout evicts sessions not touched for d. Zero disables eviction.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.idleTimeout = d
		}
	}
}

// WithSweepInterval sets how often idle sessions are looked for.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// WithMaxSessions caps concurrently held sessions.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		assetDelay:    DefaultAssetDelay,
		commandDelay:  DefaultCommandDelay,
		exampleDelay:  DefaultExampleDelay,
		idleTimeout:   15 * time.Minute,
		sweepInterval: 30 * time.Second,
		maxSessions:   1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates the session store. Calling it twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	s.sessions = repository.NewMemoryStore[*Session](ctx,
		repository.WithIdleTimeout(s.idleTimeout),
		repository.WithSweepInterval(s.sweepInterval),
		repository.WithMaxSessions(s.maxSessions),
	)
	s.started = true
	s.startedAt = time.Now()

	s.logger.Info(ctx, "scene service started",
		logger.Duration("assetDelay", s.assetDelay),
		logger.Duration("commandDelay", s.commandDelay),
		logger.Duration("exampleDelay", s.exampleDelay),
		logger.Int("maxSessions", s.maxSessions),
	)
	return nil
}

// Stop closes every session, canceling pending timers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	_ = s.sessions.Close()
	s.started = false
	s.logger.Info(context.Background(), "scene service stopped")
}

func (s *Service) store() (*repository.MemoryStore[*Session], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.sessions, nil
}

// CreateSession starts a fresh asset pipeline and avatar.
func (s *Service) CreateSession(ctx context.Context) (*Session, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		CreatedAt: time.Now().UTC(),
		Asset: NewAssetController(
			WithDelay(s.assetDelay),
			WithControllerLogger(s.logger.Named("asset")),
		),
		Avatar: NewAvatarController(
			WithDelay(s.commandDelay),
			WithExampleDelay(s.exampleDelay),
			WithControllerLogger(s.logger.Named("avatar")),
		),
	}
	id, err := store.Create(ctx, sess)
	if err != nil {
		sess.Close()
		return nil, fmt.Errorf("create session: %w", err)
	}
	sess.ID = id

	s.logger.Debug(ctx, "session created", logger.String("session", id))
	return sess, nil
}

// Session looks up a live session.
func (s *Service) Session(ctx context.Context, id string) (*Session, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	return store.Get(ctx, id)
}

// DeleteSession closes and forgets a session.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug(ctx, "session deleted", logger.String("session", id))
	return nil
}

// ClassifyAsset resolves input immediately, without a session or delay.
func (s *Service) ClassifyAsset(_ context.Context, input string) asset.Entry {
	e := asset.Classify(input)
	metrics.RecordClassification(metrics.PipelineAsset, e.Key)
	return e
}

// ClassifyCommand resolves a command immediately, without a session or delay.
func (s *Service) ClassifyCommand(_ context.Context, input string) (avatar.Action, string) {
	a, explanation := avatar.Classify(input)
	metrics.RecordClassification(metrics.PipelineAvatar, a.String())
	return a, explanation
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"assetDelayMs":   s.assetDelay.Milliseconds(),
		"commandDelayMs": s.commandDelay.Milliseconds(),
		"exampleDelayMs": s.exampleDelay.Milliseconds(),
		"maxSessions":    s.maxSessions,
	}
	if s.started {
		count := s.sessions.Count(context.Background())
		stats["activeSessions"] = count
		stats["uptimeSeconds"] = time.Since(s.startedAt).Seconds()
		metrics.UpdateActiveSessions(count)
	}
	return stats
}
