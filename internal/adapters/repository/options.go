package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*options)

type options struct {
	idleTimeout   time.Duration
	sweepInterval time.Duration
	maxSessions   int
	now           func() time.Time
}

// WithIdleTimeout evicts sessions not accessed for d. Zero disables eviction.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.idleTimeout = d
		}
	}
}

// WithSweepInterval sets how often the janitor looks for idle sessions.
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sweepInterval = d
		}
	}
}

// WithMaxSessions caps the number of sessions held at once.
func WithMaxSessions(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSessions = n
		}
	}
}

// WithClock overrides the time source used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
