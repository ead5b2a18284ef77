package isaac

import "fmt"

// KeySizeError represents an error when the ISAAC key size is invalid.
// ISAAC keys must be between 1 and 1024 bytes.
type KeySizeError int

// Error returns a formatted error message describing the invalid key size.
func (k KeySizeError) Error() string {
	return fmt.Sprintf("veil/stream/isaac: invalid key size %d, must be between 1 and 1024 bytes", int(k))
}

// NonceSizeError represents an error when a nonce is supplied to ISAAC,
// which takes none.
type NonceSizeError int

// Error returns a formatted error message describing the invalid nonce size.
func (n NonceSizeError) Error() string {
	return fmt.Sprintf("veil/stream/isaac: invalid nonce size %d, ISAAC takes no nonce", int(n))
}
