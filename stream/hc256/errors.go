package hc256

import "fmt"

// KeySizeError represents an error when the HC-256 key size is invalid.
// HC-256 keys must be 16 or 32 bytes long.
type KeySizeError int

// Error returns a formatted error message describing the invalid key size.
func (k KeySizeError) Error() string {
	return fmt.Sprintf("veil/stream/hc256: invalid key size %d, must be 16 or 32 bytes", int(k))
}

// NonceSizeError represents an error when the HC-256 nonce size is invalid.
// HC-256 nonces must be 16 to 32 bytes; shorter than 32 are zero-padded.
type NonceSizeError int

// Error returns a formatted error message describing the invalid nonce size.
func (n NonceSizeError) Error() string {
	return fmt.Sprintf("veil/stream/hc256: invalid nonce size %d, must be between 16 and 32 bytes", int(n))
}
