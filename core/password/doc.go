// Package password provides the password hashing strategy used at account
// creation and login.
//
// The only shipped implementation is Argon2id, a memory-hard scheme with a
// process-wide pepper mixed into every hash. The per-password salt is stored
// inside the PHC-encoded hash string; the pepper never is, so a leaked hash
// database alone is not enough for an offline brute-force.
//
// # Cost floors
//
// Construction rejects configurations below the safety floors rather than
// silently accepting a weakened scheme:
//
//   - pepper: at least 8 bytes
//   - memory: at least 15 MiB
//   - iterations: at least 2
//   - parallelism: at least 1
//
// # Usage
//
//	strategy, err := password.NewArgon2id([]byte("delicious pepper"), 15, 2, 1)
//	if err != nil {
//		// one of ErrPepperTooWeak, ErrMemoryTooLow, ErrIterationsTooLow,
//		// ErrParallelismTooLow
//	}
//
//	hash, err := strategy.HashPassword("correct horse battery staple")
//	// store hash.Expose() next to the account record
//
//	ok, err := strategy.VerifyPassword(stored, presented)
//	// ok == false means wrong password; err != nil means the stored hash
//	// is structurally malformed
//
// Verification reads the cost parameters back out of the stored hash, so
// raising the configured costs only affects newly generated hashes.
package password
