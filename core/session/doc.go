// Package session manages the lifecycle of login sessions and one-time
// password-reset ids over interchangeable storage backends.
//
// The Manager owns the expiry policy (fixed alive duration, optional
// auto-refresh on read); a Backend owns record storage. Three backends
// conform to the same contract: the in-process MemoryBackend in this
// package, and the durable and cache variants in the postgres and redis
// subpackages.
//
// # Sessions
//
//	backend := session.NewMemoryBackend[uuid.UUID]()
//	manager := session.NewManager(backend,
//		session.WithAliveDuration[uuid.UUID](30*time.Minute),
//		session.WithAutoRefresh[uuid.UUID](true),
//	)
//
//	sess, err := manager.NewSession(ctx, userID)
//	sess, err = manager.Session(ctx, sess.ID) // refreshed read
//
// With auto-refresh enabled every successful read silently pushes the
// session's expiry forward by the alive duration. Callers that need an
// absolute session lifetime must leave auto-refresh off.
//
// A session read past its expiry is treated as absent and reported as
// ErrNotFound; backends delete lazily (memory), filter and sweep (postgres),
// or delegate expiry to the store itself (redis).
//
// # Password resets
//
// Reset ids are single-use sessions kept in a second backend scoped to its
// own table or key namespace:
//
//	manager := session.NewManager(backend,
//		session.WithResetBackend[uuid.UUID](resetBackend),
//	)
//
//	resetID, err := manager.GeneratePasswordResetID(ctx, userID, time.Now().Add(time.Hour))
//	userID, err = manager.ConsumePasswordResetID(ctx, resetID) // second call: ErrNotFound
//
// Consumption atomically verifies, returns the bound user id, and
// invalidates the id. A reset link can never be replayed.
package session
