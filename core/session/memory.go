package session

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend keeps session records in a single in-process table guarded
// by a read/write lock. Expiry is lazy: a read past the expiry deletes the
// record and reports it absent, and ClearStale sweeps the rest.
//
// Intended for tests and single-process deployments; use the postgres or
// redis backends for anything shared.
type MemoryBackend[U any] struct {
	mu       sync.RWMutex
	sessions map[SessionID]Session[U]
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend[U any]() *MemoryBackend[U] {
	return &MemoryBackend[U]{
		sessions: make(map[SessionID]Session[U]),
	}
}

func (b *MemoryBackend[U]) NewSession(ctx context.Context, userID U, expiresAt time.Time) (Session[U], error) {
	rec := Session[U]{
		ID:        NewSessionID(),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}

	b.mu.Lock()
	b.sessions[rec.ID] = rec
	b.mu.Unlock()

	return rec, nil
}

func (b *MemoryBackend[U]) Session(ctx context.Context, id SessionID, extendTo time.Time) (Session[U], error) {
	if extendTo.IsZero() {
		b.mu.RLock()
		rec, ok := b.sessions[id]
		b.mu.RUnlock()

		if !ok {
			return Session[U]{}, ErrNotFound
		}
		if rec.IsExpired() {
			b.removeIfExpired(id)
			return Session[U]{}, ErrNotFound
		}
		return rec, nil
	}

	// Get-and-extend holds the write lock so concurrent readers never
	// observe a half-applied refresh.
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.sessions[id]
	if !ok {
		return Session[U]{}, ErrNotFound
	}
	if rec.IsExpired() {
		delete(b.sessions, id)
		return Session[U]{}, ErrNotFound
	}

	rec.ExpiresAt = extendTo
	b.sessions[id] = rec
	return rec, nil
}

func (b *MemoryBackend[U]) ExtendExpiry(ctx context.Context, id SessionID, expiresAt time.Time) (Session[U], error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.sessions[id]
	if !ok {
		return Session[U]{}, ErrNotFound
	}

	rec.ExpiresAt = expiresAt
	b.sessions[id] = rec
	return rec, nil
}

func (b *MemoryBackend[U]) Expire(ctx context.Context, id SessionID) error {
	b.mu.Lock()
	delete(b.sessions, id)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend[U]) Take(ctx context.Context, id SessionID) (Session[U], error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.sessions[id]
	if !ok {
		return Session[U]{}, ErrNotFound
	}

	delete(b.sessions, id)
	if rec.IsExpired() {
		return Session[U]{}, ErrNotFound
	}
	return rec, nil
}

func (b *MemoryBackend[U]) ClearStale(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, rec := range b.sessions {
		if rec.IsExpired() {
			delete(b.sessions, id)
		}
	}
	return nil
}

// removeIfExpired re-checks under the write lock so a record refreshed
// between the read and the delete survives.
func (b *MemoryBackend[U]) removeIfExpired(id SessionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if rec, ok := b.sessions[id]; ok && rec.IsExpired() {
		delete(b.sessions, id)
	}
}
