// Package repository holds the in-memory session store.
package repository

import "context"

// Closer is released when its session is deleted, expired, or the store closes.
type Closer interface {
	Close()
}

// Store keeps live sessions keyed by generated id.
type Store[T Closer] interface {
	// Create stores v under a new id. Returns ErrCapacity when full.
	Create(ctx context.Context, v T) (string, error)

	// Get returns the session and marks it as recently used.
	// Returns ErrNotFound if the id is unknown or expired.
	Get(ctx context.Context, id string) (T, error)

	// Delete closes and removes the session.
	Delete(ctx context.Context, id string) error

	// Count returns the number of live sessions.
	Count(ctx context.Context) int
}
