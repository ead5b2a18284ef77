package hc128

import "fmt"

// KeySizeError represents an error when the HC-128 key size is invalid.
// HC-128 keys must be exactly 16 bytes long.
type KeySizeError int

// Error returns a formatted error message describing the invalid key size.
func (k KeySizeError) Error() string {
	return fmt.Sprintf("veil/stream/hc128: invalid key size %d, must be exactly 16 bytes", int(k))
}

// NonceSizeError represents an error when the HC-128 nonce size is invalid.
// HC-128 nonces must be at most 16 bytes; shorter nonces are zero-padded.
type NonceSizeError int

// Error returns a formatted error message describing the invalid nonce size.
func (n NonceSizeError) Error() string {
	return fmt.Sprintf("veil/stream/hc128: invalid nonce size %d, must be at most 16 bytes", int(n))
}
