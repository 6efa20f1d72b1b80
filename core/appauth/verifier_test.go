package appauth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/appauth"
	"github.com/dmitrymomot/authkit/pkg/secrets"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Insert(ctx context.Context, auth appauth.NewAppAuth) (appauth.AppAuthID, error) {
	args := m.Called(ctx, auth)
	return args.Get(0).(appauth.AppAuthID), args.Error(1)
}

func (m *mockStore) Find(ctx context.Context, id appauth.AppAuthID) (appauth.AppAuth, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(appauth.AppAuth), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, id appauth.AppAuthID) (string, bool, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockCache) Put(ctx context.Context, rec appauth.AppAuth) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockCache) Del(ctx context.Context, id appauth.AppAuthID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mapCache is a trivial in-process TokenCache for end-to-end protocol tests.
type mapCache struct {
	mu     sync.Mutex
	tokens map[appauth.AppAuthID]string
}

func newMapCache() *mapCache {
	return &mapCache{tokens: make(map[appauth.AppAuthID]string)}
}

func (c *mapCache) Get(_ context.Context, id appauth.AppAuthID) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	token, ok := c.tokens[id]
	return token, ok, nil
}

func (c *mapCache) Put(_ context.Context, rec appauth.AppAuth) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[rec.ID] = rec.Token.Expose()
	return nil
}

func (c *mapCache) Del(_ context.Context, id appauth.AppAuthID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tokens, id)
	return nil
}

func newID(t *testing.T) appauth.AppAuthID {
	t.Helper()
	id, err := uuid.NewRandom()
	require.NoError(t, err)
	return appauth.AppAuthID(id)
}

func record(id appauth.AppAuthID, token string) appauth.AppAuth {
	return appauth.AppAuth{
		ID:    id,
		Name:  "reporting-service",
		Token: secrets.New(token),
	}
}

func TestVerifierCreate(t *testing.T) {
	t.Parallel()

	t.Run("inserts, reads back, and caches", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		id := newID(t)
		auth := appauth.NewAppAuth{Name: "reporting-service", Token: secrets.New("T1")}
		rec := record(id, "T1")

		store := new(mockStore)
		store.On("Insert", ctx, auth).Return(id, nil).Once()
		store.On("Find", ctx, id).Return(rec, nil).Once()

		cache := new(mockCache)
		cache.On("Put", ctx, rec).Return(nil).Once()

		verifier := appauth.NewVerifier(store, cache)
		created, err := verifier.Create(ctx, auth)
		require.NoError(t, err)
		require.Equal(t, id, created.ID)
		require.Equal(t, "T1", created.Token.Expose())

		store.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache write failure does not fail create", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		id := newID(t)
		auth := appauth.NewAppAuth{Name: "reporting-service", Token: secrets.New("T1")}
		rec := record(id, "T1")

		store := new(mockStore)
		store.On("Insert", ctx, auth).Return(id, nil).Once()
		store.On("Find", ctx, id).Return(rec, nil).Once()

		cache := new(mockCache)
		cache.On("Put", ctx, rec).Return(errors.New("redis down")).Once()

		verifier := appauth.NewVerifier(store, cache)
		created, err := verifier.Create(ctx, auth)
		require.NoError(t, err)
		require.Equal(t, id, created.ID)
	})

	t.Run("insert failure is fatal", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		auth := appauth.NewAppAuth{Name: "reporting-service", Token: secrets.New("T1")}

		store := new(mockStore)
		store.On("Insert", ctx, auth).Return(appauth.AppAuthID{}, errors.New("constraint violation")).Once()

		verifier := appauth.NewVerifier(store, new(mockCache))
		_, err := verifier.Create(ctx, auth)
		require.Error(t, err)
	})
}

func TestVerifierVerifyToken(t *testing.T) {
	t.Parallel()

	t.Run("cache hit with matching token skips the store", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		id := newID(t)

		cache := new(mockCache)
		cache.On("Get", ctx, id).Return("T1", true, nil).Once()

		store := new(mockStore)

		verifier := appauth.NewVerifier(store, cache)
		require.NoError(t, verifier.VerifyToken(ctx, id, "T1"))

		store.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("cold cache falls through to store and backfills", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		id := newID(t)
		rec := record(id, "T1")

		cache := new(mockCache)
		cache.On("Get", ctx, id).Return("", false, nil).Once()
		cache.On("Put", ctx, rec).Return(nil).Once()

		store := new(mockStore)
		store.On("Find", ctx, id).Return(rec, nil).Once()

		verifier := appauth.NewVerifier(store, cache)
		require.NoError(t, verifier.VerifyToken(ctx, id, "T1"))

		cache.AssertExpectations(t)
	})

	t.Run("cache read error falls back to the store", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		id := newID(t)
		rec := record(id, "T1")

		cache := new(mockCache)
		cache.On("Get", ctx, id).Return("", false, errors.New("redis down")).Once()
		cache.On("Put", ctx, rec).Return(errors.New("redis down")).Once()

		store := new(mockStore)
		store.On("Find", ctx, id).Return(rec, nil).Once()

		verifier := appauth.NewVerifier(store, cache)
		require.NoError(t, verifier.VerifyToken(ctx, id, "T1"))
	})

	t.Run("stale cache is rewritten before rejecting", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		id := newID(t)
		rec := record(id, "T2")

		cache := new(mockCache)
		cache.On("Get", ctx, id).Return("T1", true, nil).Once()
		cache.On("Put", ctx, rec).Return(nil).Once()

		store := new(mockStore)
		store.On("Find", ctx, id).Return(rec, nil).Once()

		verifier := appauth.NewVerifier(store, cache)
		err := verifier.VerifyToken(ctx, id, "T1")
		require.ErrorIs(t, err, appauth.ErrInvalidToken)

		cache.AssertExpectations(t)
	})

	t.Run("unknown credential surfaces not found", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		id := newID(t)

		cache := new(mockCache)
		cache.On("Get", ctx, id).Return("", false, nil).Once()

		store := new(mockStore)
		store.On("Find", ctx, id).Return(appauth.AppAuth{}, appauth.ErrNotFound).Once()

		verifier := appauth.NewVerifier(store, cache)
		err := verifier.VerifyToken(ctx, id, "T1")
		require.ErrorIs(t, err, appauth.ErrNotFound)
	})

	t.Run("store error is fatal", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		id := newID(t)

		cache := new(mockCache)
		cache.On("Get", ctx, id).Return("", false, nil).Once()

		store := new(mockStore)
		store.On("Find", ctx, id).Return(appauth.AppAuth{}, errors.New("connection reset")).Once()

		verifier := appauth.NewVerifier(store, cache)
		err := verifier.VerifyToken(ctx, id, "T1")
		require.Error(t, err)
		require.NotErrorIs(t, err, appauth.ErrInvalidToken)
	})
}

// TestVerifierSelfHeal walks the rotation scenario end to end: the durable
// token changes out of band, the next verification with the old token fails
// but repairs the cache, and the new token then verifies from the cache alone.
func TestVerifierSelfHeal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	id := newID(t)

	cache := newMapCache()
	require.NoError(t, cache.Put(ctx, record(id, "T1")))

	// The durable store now holds a rotated token.
	store := new(mockStore)
	store.On("Find", ctx, id).Return(record(id, "T2"), nil).Once()

	verifier := appauth.NewVerifier(store, cache)

	err := verifier.VerifyToken(ctx, id, "T1")
	require.ErrorIs(t, err, appauth.ErrInvalidToken)

	cached, ok, err := cache.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "T2", cached, "rejection must leave the authoritative token behind")

	// The repaired cache now answers on its own; Find was limited to one call.
	require.NoError(t, verifier.VerifyToken(ctx, id, "T2"))
	store.AssertExpectations(t)
}

func TestVerifierExpiringCredential(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	id := newID(t)
	expires := time.Now().Add(time.Hour).UTC()
	rec := appauth.AppAuth{
		ID:        id,
		Name:      "reporting-service",
		Token:     secrets.New("T1"),
		ExpiresAt: &expires,
	}

	cache := new(mockCache)
	cache.On("Get", ctx, id).Return("", false, nil).Once()
	cache.On("Put", ctx, rec).Return(nil).Once()

	store := new(mockStore)
	store.On("Find", ctx, id).Return(rec, nil).Once()

	verifier := appauth.NewVerifier(store, cache)
	require.NoError(t, verifier.VerifyToken(ctx, id, "T1"))
	cache.AssertExpectations(t)
}
