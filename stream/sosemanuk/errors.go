package sosemanuk

import "fmt"

// KeySizeError represents an error when the SOSEMANUK key size is invalid.
// SOSEMANUK keys must be 8 to 32 bytes; shorter keys are padded with 0x01
// then zero fill.
type KeySizeError int

// Error returns a formatted error message describing the invalid key size.
func (k KeySizeError) Error() string {
	return fmt.Sprintf("veil/stream/sosemanuk: invalid key size %d, must be between 8 and 32 bytes", int(k))
}

// NonceSizeError represents an error when the SOSEMANUK nonce size is
// invalid. SOSEMANUK nonces must be 4 to 16 bytes; shorter nonces are
// zero-padded.
type NonceSizeError int

// Error returns a formatted error message describing the invalid nonce size.
func (n NonceSizeError) Error() string {
	return fmt.Sprintf("veil/stream/sosemanuk: invalid nonce size %d, must be between 4 and 16 bytes", int(n))
}
