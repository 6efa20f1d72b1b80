// Package redis provides Redis client initialization and health checking
// for the authkit cache and session backends.
//
// Connect validates the connection URL, dials with exponential backoff, and
// verifies connectivity with a ping before returning the client:
//
//	var cfg redis.Config
//	if err := env.Parse(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Healthcheck returns a probe function for readiness and liveness
// endpoints. The package errors (ErrFailedToParseRedisConnString,
// ErrRedisNotReady, ErrEmptyConnectionURL, ErrHealthcheckFailed) are stable
// sentinels for errors.Is checks.
package redis
