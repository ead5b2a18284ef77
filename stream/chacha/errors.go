package chacha

import "fmt"

// KeySizeError represents an error when the ChaCha key size is invalid.
// ChaCha keys must be 16 or 32 bytes long.
type KeySizeError int

// Error returns a formatted error message describing the invalid key size.
func (k KeySizeError) Error() string {
	return fmt.Sprintf("veil/stream/chacha: invalid key size %d, must be 16 or 32 bytes", int(k))
}

// NonceSizeError represents an error when the ChaCha nonce size is invalid.
// ChaCha nonces must be exactly 8 bytes long.
type NonceSizeError int

// Error returns a formatted error message describing the invalid nonce size.
func (n NonceSizeError) Error() string {
	return fmt.Sprintf("veil/stream/chacha: invalid nonce size %d, must be exactly 8 bytes", int(n))
}

// RoundCountError represents an error when the requested round count is not
// one of the supported ChaCha variants (8, 12 or 20).
type RoundCountError int

// Error returns a formatted error message describing the invalid round count.
func (r RoundCountError) Error() string {
	return fmt.Sprintf("veil/stream/chacha: invalid round count %d, must be 8, 12 or 20", int(r))
}
