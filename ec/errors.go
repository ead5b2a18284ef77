package ec

import "fmt"

// UnknownCurveError represents an error when a curve name is not in the
// closed SEC named-curve set.
type UnknownCurveError string

// Error returns a formatted error message naming the unknown curve.
func (e UnknownCurveError) Error() string {
	return fmt.Sprintf("veil/ec: unknown curve %q", string(e))
}

// InfinityError represents an error when the point at infinity is used
// where an affine point is required.
type InfinityError struct{}

// Error returns the fixed error message for the point at infinity.
func (InfinityError) Error() string {
	return "veil/ec: point at infinity has no affine coordinates"
}

// InvalidPointError represents an error when a public point fails
// validation against its domain.
type InvalidPointError struct {
	Reason string // Which validation check failed
}

// Error returns a formatted error message describing the failed check.
func (e InvalidPointError) Error() string {
	return fmt.Sprintf("veil/ec: invalid public point: %s", e.Reason)
}

// PointEncodingError represents an error when SEC1 point bytes cannot be
// parsed.
type PointEncodingError struct {
	Reason string // Why the encoding was rejected
}

// Error returns a formatted error message describing the malformed encoding.
func (e PointEncodingError) Error() string {
	return fmt.Sprintf("veil/ec: malformed point encoding: %s", e.Reason)
}

// EntropyError represents an error when the random source fails during key
// generation.
type EntropyError struct {
	Err error // The underlying error from the entropy source
}

// Error returns a formatted error message wrapping the entropy failure.
func (e EntropyError) Error() string {
	return fmt.Sprintf("veil/ec: entropy source failed: %v", e.Err)
}
