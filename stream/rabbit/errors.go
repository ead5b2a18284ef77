package rabbit

import "fmt"

// KeySizeError represents an error when the Rabbit key size is invalid.
// Rabbit keys must be exactly 16 bytes long.
type KeySizeError int

// Error returns a formatted error message describing the invalid key size.
func (k KeySizeError) Error() string {
	return fmt.Sprintf("veil/stream/rabbit: invalid key size %d, must be exactly 16 bytes", int(k))
}

// NonceSizeError represents an error when the Rabbit nonce size is invalid.
// Rabbit nonces must be exactly 8 bytes long.
type NonceSizeError int

// Error returns a formatted error message describing the invalid nonce size.
func (n NonceSizeError) Error() string {
	return fmt.Sprintf("veil/stream/rabbit: invalid nonce size %d, must be exactly 8 bytes", int(n))
}
