// Package appauth issues and verifies long-lived application-to-application
// credentials with cache-aside consistency.
//
// A credential is created once in the durable store (the system of record)
// and its secret token is mirrored into a fast cache keyed by id. The
// Verifier owns the consistency protocol between the two injected
// collaborators:
//
//  1. A cache hit with a matching token succeeds without touching the
//     durable store.
//  2. A cache miss, mismatch, or cache error falls back to the durable
//     record.
//  3. A durable match succeeds and backfills the cache.
//  4. A durable mismatch rewrites the cache with the authoritative token
//     and fails with ErrInvalidToken, so a repeated wrong guess
//     short-circuits at the cache and a cache poisoned by an out-of-band
//     rotation self-heals within one verification.
//
// Cache writes are tolerated failures throughout: the durable store stays
// authoritative and the next verification repairs the cache. Every other
// storage error propagates.
//
// Tokens are wrapped in secrets.Secret and never appear in formatted output
// or logs.
package appauth
