package appauth

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/authkit/core/logger"
)

// Verifier composes a durable Store with a TokenCache. It owns the
// cache-aside protocol; it owns neither collaborator, which are shared
// across calls.
type Verifier struct {
	store Store
	cache TokenCache
	log   *slog.Logger
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithLogger sets the logger used for tolerated cache-write failures.
func WithLogger(log *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		if log != nil {
			v.log = log
		}
	}
}

// NewVerifier creates a verifier over the durable store and token cache.
func NewVerifier(store Store, cache TokenCache, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		store: store,
		cache: cache,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Create inserts the credential into the durable store, reads back the
// canonical record to confirm the commit and obtain the generated id, and
// mirrors the token into the cache. A failed cache write does not fail the
// call: the durable store is authoritative and the first verification
// repopulates the cache.
func (v *Verifier) Create(ctx context.Context, auth NewAppAuth) (AppAuth, error) {
	id, err := v.store.Insert(ctx, auth)
	if err != nil {
		return AppAuth{}, err
	}

	rec, err := v.store.Find(ctx, id)
	if err != nil {
		return AppAuth{}, err
	}

	if err := v.cache.Put(ctx, rec); err != nil {
		v.log.WarnContext(ctx, "appauth cache write failed after create",
			slog.String("appauth_id", rec.ID.String()),
			logger.Error(err),
		)
	}
	return rec, nil
}

// VerifyToken checks the presented token for id. The fast path is a cache
// hit with an exact match; everything else consults the durable store and
// repairs the cache. See the package documentation for the full protocol.
func (v *Verifier) VerifyToken(ctx context.Context, id AppAuthID, presented string) error {
	// Phase 1: cache. A cache error is the one storage error that is
	// non-fatal here; it only forces the durable path.
	cached, ok, err := v.cache.Get(ctx, id)
	if err != nil {
		v.log.WarnContext(ctx, "appauth cache read failed, falling back to durable store",
			slog.String("appauth_id", id.String()),
			logger.Error(err),
		)
		ok = false
	}
	if ok && tokensEqual(cached, presented) {
		return nil
	}

	// Phase 2: durable store is authoritative. Errors from here on are
	// fatal to the call.
	rec, err := v.store.Find(ctx, id)
	if err != nil {
		return err
	}

	if tokensEqual(rec.Token.Expose(), presented) {
		// Cold cache or healed record: backfill so the next verification
		// short-circuits.
		v.repairCache(ctx, rec)
		return nil
	}

	// The cache may hold the same wrong token that was just presented
	// (stale after an out-of-band rotation). Rewriting it with the
	// authoritative token both self-heals and makes a repeated wrong guess
	// fail at the cache instead of hammering the durable store.
	v.repairCache(ctx, rec)
	return ErrInvalidToken
}

func (v *Verifier) repairCache(ctx context.Context, rec AppAuth) {
	if err := v.cache.Put(ctx, rec); err != nil {
		v.log.WarnContext(ctx, "appauth cache repair failed",
			slog.String("appauth_id", rec.ID.String()),
			logger.Error(err),
		)
	}
}

// tokensEqual isolates the comparison so a move to constant-time compare is
// a one-line change.
func tokensEqual(a, b string) bool {
	return a == b
}
