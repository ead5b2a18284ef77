package curve25519

import "fmt"

// ScalarSizeError represents an error when a private scalar is not exactly
// 32 bytes long.
type ScalarSizeError int

// Error returns a formatted error message describing the invalid scalar size.
func (s ScalarSizeError) Error() string {
	return fmt.Sprintf("veil/curve25519: invalid scalar size %d, must be exactly 32 bytes", int(s))
}

// PointSizeError represents an error when a public value is not exactly
// 32 bytes long.
type PointSizeError int

// Error returns a formatted error message describing the invalid point size.
func (p PointSizeError) Error() string {
	return fmt.Sprintf("veil/curve25519: invalid point size %d, must be exactly 32 bytes", int(p))
}

// InvalidPointError represents an error when an Edwards point has no
// Montgomery X equivalent (the exceptional point y = 1).
type InvalidPointError struct{}

// Error returns the fixed error message for the exceptional point.
func (InvalidPointError) Error() string {
	return "veil/curve25519: point has no Montgomery representation"
}
