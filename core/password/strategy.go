package password

import "github.com/dmitrymomot/authkit/pkg/secrets"

// Strategy turns plaintext passwords into storable hashes and verifies
// presented passwords against stored hashes. Implementations are safe for
// concurrent use; cost configuration is fixed at construction.
type Strategy interface {
	// HashPassword derives a fresh salted hash of password. The returned
	// value embeds the salt and cost parameters in PHC string format.
	HashPassword(password string) (secrets.Secret[string], error)

	// VerifyPassword reports whether password matches the stored hash.
	// A wrong password is (false, nil); an error means the stored hash is
	// structurally unusable.
	VerifyPassword(hash, password string) (bool, error)
}
