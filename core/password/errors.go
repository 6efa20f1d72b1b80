package password

import "errors"

var (
	// ErrPepperTooWeak is returned when the configured pepper is under 8 bytes.
	ErrPepperTooWeak = errors.New("provided pepper is too weak: minimum size is 8 bytes")
	// ErrMemoryTooLow is returned when the configured memory cost is under 15 MiB.
	ErrMemoryTooLow = errors.New("memory use is too weak: minimum size is 15 MiB")
	// ErrIterationsTooLow is returned when the iteration count is under 2.
	ErrIterationsTooLow = errors.New("too few iterations: minimum is 2")
	// ErrParallelismTooLow is returned when the parallelism degree is zero.
	ErrParallelismTooLow = errors.New("parallelism must be at least 1")
	// ErrPasswordTooShort is returned for passwords under 8 characters.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	// ErrMalformedHash is returned when a stored hash cannot be parsed.
	ErrMalformedHash = errors.New("malformed password hash")
)
