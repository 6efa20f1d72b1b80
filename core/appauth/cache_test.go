package appauth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/appauth"
	"github.com/dmitrymomot/authkit/pkg/secrets"
)

func newCacheUnderTest(t *testing.T) (*appauth.RedisTokenCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return appauth.NewRedisTokenCache(client), mr
}

func TestRedisTokenCache(t *testing.T) {
	t.Parallel()

	t.Run("round trip under the appauth namespace", func(t *testing.T) {
		t.Parallel()

		cache, mr := newCacheUnderTest(t)
		ctx := context.Background()
		id := appauth.AppAuthID(uuid.New())

		require.NoError(t, cache.Put(ctx, appauth.AppAuth{
			ID:    id,
			Name:  "reporting-service",
			Token: secrets.New("T1"),
		}))
		require.True(t, mr.Exists("appauth/"+id.String()))

		token, ok, err := cache.Get(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "T1", token)
	})

	t.Run("miss is not an error", func(t *testing.T) {
		t.Parallel()

		cache, _ := newCacheUnderTest(t)
		_, ok, err := cache.Get(context.Background(), appauth.AppAuthID(uuid.New()))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("entry expires alongside the credential", func(t *testing.T) {
		t.Parallel()

		cache, mr := newCacheUnderTest(t)
		ctx := context.Background()
		id := appauth.AppAuthID(uuid.New())
		expires := time.Now().Add(time.Minute)

		require.NoError(t, cache.Put(ctx, appauth.AppAuth{
			ID:        id,
			Name:      "reporting-service",
			Token:     secrets.New("T1"),
			ExpiresAt: &expires,
		}))
		require.Greater(t, mr.TTL("appauth/"+id.String()), time.Duration(0))

		mr.FastForward(2 * time.Minute)
		_, ok, err := cache.Get(ctx, id)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("rewriting replaces a stale token", func(t *testing.T) {
		t.Parallel()

		cache, _ := newCacheUnderTest(t)
		ctx := context.Background()
		id := appauth.AppAuthID(uuid.New())

		require.NoError(t, cache.Put(ctx, appauth.AppAuth{ID: id, Token: secrets.New("T1")}))
		require.NoError(t, cache.Put(ctx, appauth.AppAuth{ID: id, Token: secrets.New("T2")}))

		token, ok, err := cache.Get(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "T2", token)
	})

	t.Run("delete evicts and tolerates missing keys", func(t *testing.T) {
		t.Parallel()

		cache, _ := newCacheUnderTest(t)
		ctx := context.Background()
		id := appauth.AppAuthID(uuid.New())

		require.NoError(t, cache.Put(ctx, appauth.AppAuth{ID: id, Token: secrets.New("T1")}))
		require.NoError(t, cache.Del(ctx, id))

		_, ok, err := cache.Get(ctx, id)
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, cache.Del(ctx, id))
	})
}
