package kex

import "fmt"

// CurveMismatchError represents an error when agreement keys do not share
// a curve.
type CurveMismatchError struct {
	A, B string // The two curve names that disagreed
}

// Error returns a formatted error message naming the mismatched curves.
func (e CurveMismatchError) Error() string {
	return fmt.Sprintf("veil/kex: curve mismatch between keys: %q and %q", e.A, e.B)
}

// SharedSecretError represents an error when a shared secret cannot be
// computed.
type SharedSecretError struct {
	Err error // The underlying failure
}

// Error returns a formatted error message wrapping the failure.
func (e SharedSecretError) Error() string {
	return fmt.Sprintf("veil/kex: shared secret computation failed: %v", e.Err)
}
