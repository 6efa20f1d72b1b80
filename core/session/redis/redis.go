// Package redis provides a fast-cache session backend on Redis.
//
// Records are serialized JSON blobs under namespaced keys ("<prefix>/<id>").
// Expiry is delegated entirely to Redis' own absolute-expiry mechanism, so
// ClearStale is a no-op and an expired session is simply a missing key.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/authkit/core/session"
)

// Backend stores session records in Redis. The combined read-and-extend
// operations ride on GETEX and GETDEL so no concurrent reader can observe a
// half-applied update.
type Backend[U any] struct {
	client goredis.UniversalClient
	prefix string
}

// payload is the stored shape. Expiry lives in the key TTL, not the record.
type payload[U any] struct {
	UserID U `json:"user_id"`
}

// New creates a backend over client, namespacing keys under prefix
// (typically "session" or "pwreset").
func New[U any](client goredis.UniversalClient, prefix string) *Backend[U] {
	return &Backend[U]{client: client, prefix: prefix}
}

func (b *Backend[U]) key(id session.SessionID) string {
	return b.prefix + "/" + id.String()
}

func (b *Backend[U]) NewSession(ctx context.Context, userID U, expiresAt time.Time) (session.Session[U], error) {
	rec := session.Session[U]{
		ID:        session.NewSessionID(),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}

	data, err := json.Marshal(payload[U]{UserID: userID})
	if err != nil {
		return session.Session[U]{}, fmt.Errorf("marshal session: %w", err)
	}

	if err := b.client.SetArgs(ctx, b.key(rec.ID), data, goredis.SetArgs{ExpireAt: expiresAt}).Err(); err != nil {
		return session.Session[U]{}, fmt.Errorf("store session: %w", err)
	}
	return rec, nil
}

func (b *Backend[U]) Session(ctx context.Context, id session.SessionID, extendTo time.Time) (session.Session[U], error) {
	if !extendTo.IsZero() {
		// GETEX performs the lookup and the expiry update in one command.
		data, err := b.client.GetEx(ctx, b.key(id), time.Until(extendTo)).Result()
		if err != nil {
			return session.Session[U]{}, wrapGetErr(err)
		}
		return b.decode(id, data, extendTo)
	}

	// Plain read still needs the remaining TTL to reconstruct ExpiresAt;
	// MULTI/EXEC keeps the pair consistent.
	var (
		get  *goredis.StringCmd
		pttl *goredis.DurationCmd
	)
	_, err := b.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		get = pipe.Get(ctx, b.key(id))
		pttl = pipe.PTTL(ctx, b.key(id))
		return nil
	})
	if err != nil {
		return session.Session[U]{}, wrapGetErr(err)
	}

	return b.decode(id, get.Val(), time.Now().Add(pttl.Val()))
}

func (b *Backend[U]) ExtendExpiry(ctx context.Context, id session.SessionID, expiresAt time.Time) (session.Session[U], error) {
	return b.Session(ctx, id, expiresAt)
}

func (b *Backend[U]) Expire(ctx context.Context, id session.SessionID) error {
	if err := b.client.Del(ctx, b.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (b *Backend[U]) Take(ctx context.Context, id session.SessionID) (session.Session[U], error) {
	var (
		pttl   *goredis.DurationCmd
		getdel *goredis.StringCmd
	)
	_, err := b.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pttl = pipe.PTTL(ctx, b.key(id))
		getdel = pipe.GetDel(ctx, b.key(id))
		return nil
	})
	if err != nil {
		return session.Session[U]{}, wrapGetErr(err)
	}

	return b.decode(id, getdel.Val(), time.Now().Add(pttl.Val()))
}

// ClearStale is a no-op: Redis evicts expired keys itself.
func (b *Backend[U]) ClearStale(ctx context.Context) error {
	return nil
}

func (b *Backend[U]) decode(id session.SessionID, data string, expiresAt time.Time) (session.Session[U], error) {
	var p payload[U]
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return session.Session[U]{}, fmt.Errorf("unmarshal session: %w", err)
	}

	return session.Session[U]{
		ID:        id,
		UserID:    p.UserID,
		ExpiresAt: expiresAt,
	}, nil
}

func wrapGetErr(err error) error {
	if errors.Is(err, goredis.Nil) {
		return session.ErrNotFound
	}
	return fmt.Errorf("read session: %w", err)
}
