package entropy

import "fmt"

// SourceError represents an error when the underlying randomness supplier
// fails.
type SourceError struct {
	Err error // The underlying error from the supplier
}

// Error returns a formatted error message wrapping the supplier failure.
func (e SourceError) Error() string {
	return fmt.Sprintf("veil/entropy: randomness source failed: %v", e.Err)
}

// BoundError represents an error when a draw is requested over an empty or
// inverted range.
type BoundError int

// Error returns a formatted error message describing the invalid bound.
func (b BoundError) Error() string {
	return fmt.Sprintf("veil/entropy: invalid draw bound %d", int(b))
}

// EmptySeedError represents an error when a deterministic source is built
// from an empty seed.
type EmptySeedError struct{}

// Error returns the fixed error message for an empty seed.
func (EmptySeedError) Error() string {
	return "veil/entropy: deterministic seed cannot be empty"
}
