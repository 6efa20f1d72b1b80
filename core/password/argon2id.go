package password

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrymomot/authkit/pkg/secrets"
)

const (
	minPepperLen   = 8
	minMemoryMiB   = 15
	minIterations  = 2
	minPasswordLen = 8
	argon2SaltLen  = 16
	argon2KeyLen   = 32
	phcFormat      = "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s"
	phcScanVersion = "v=%d"
	phcScanParams  = "m=%d,t=%d,p=%d"
)

// Argon2id implements Strategy using argon2id with a process-wide pepper.
// The pepper is mixed into every hash through an HMAC pre-hash of the
// password, so it participates in the derivation without being stored.
type Argon2id struct {
	pepper      secrets.Secret[[]byte]
	memoryMiB   uint32
	iterations  uint32
	parallelism uint8
}

// NewArgon2id validates the cost configuration and returns a ready strategy.
// The floors are deliberate: an operator cannot construct a strategy below
// them. Each violated floor has its own sentinel error.
func NewArgon2id(pepper []byte, memoryMiB, iterations uint32, parallelism uint8) (*Argon2id, error) {
	if len(pepper) < minPepperLen {
		return nil, ErrPepperTooWeak
	}
	if memoryMiB < minMemoryMiB {
		return nil, ErrMemoryTooLow
	}
	if iterations < minIterations {
		return nil, ErrIterationsTooLow
	}
	if parallelism < 1 {
		return nil, ErrParallelismTooLow
	}

	return &Argon2id{
		pepper:      secrets.New(pepper),
		memoryMiB:   memoryMiB,
		iterations:  iterations,
		parallelism: parallelism,
	}, nil
}

// HashPassword derives a fresh random salt and returns the PHC-encoded
// argon2id hash of the peppered password.
func (s *Argon2id) HashPassword(password string) (secrets.Secret[string], error) {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return secrets.Secret[string]{}, ErrPasswordTooShort
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return secrets.Secret[string]{}, fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey(s.pepperedInput(password), salt, s.iterations, s.memoryMiB*1024, s.parallelism, argon2KeyLen)

	encoded := fmt.Sprintf(phcFormat,
		argon2.Version,
		s.memoryMiB*1024,
		s.iterations,
		s.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return secrets.New(encoded), nil
}

// VerifyPassword recomputes the hash with the parameters embedded in the
// stored PHC string and this strategy's pepper. A wrong password returns
// (false, nil); a hash that cannot be parsed returns ErrMalformedHash.
func (s *Argon2id) VerifyPassword(hash, password string) (bool, error) {
	memoryKiB, iterations, parallelism, salt, want, err := parsePHC(hash)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey(s.pepperedInput(password), salt, iterations, memoryKiB, parallelism, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// pepperedInput keys the password with the pepper before the memory-hard
// derivation. HMAC keeps the construction deterministic for verification
// while the pepper stays out of the stored hash.
func (s *Argon2id) pepperedInput(password string) []byte {
	mac := hmac.New(sha256.New, s.pepper.Expose())
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

func parsePHC(hash string) (memoryKiB, iterations uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: expected 6 segments, got %d", ErrMalformedHash, len(parts))
	}
	if parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], phcScanVersion, &version); err != nil {
		return 0, 0, 0, nil, nil, errors.Join(ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrMalformedHash, version)
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], phcScanParams, &memoryKiB, &iterations, &threads); err != nil {
		return 0, 0, 0, nil, nil, errors.Join(ErrMalformedHash, err)
	}
	if threads == 0 || threads > 255 {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: parallelism %d out of range", ErrMalformedHash, threads)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, errors.Join(ErrMalformedHash, err)
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, errors.Join(ErrMalformedHash, err)
	}
	if len(key) == 0 {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: empty derived key", ErrMalformedHash)
	}

	return memoryKiB, iterations, uint8(threads), salt, key, nil
}
