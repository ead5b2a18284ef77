package xsalsa20

import "fmt"

// KeySizeError represents an error when the XSalsa20 key size is invalid.
// XSalsa20 keys must be 16 or 32 bytes long.
type KeySizeError int

// Error returns a formatted error message describing the invalid key size.
func (k KeySizeError) Error() string {
	return fmt.Sprintf("veil/stream/xsalsa20: invalid key size %d, must be 16 or 32 bytes", int(k))
}

// NonceSizeError represents an error when the XSalsa20 nonce size is invalid.
// XSalsa20 nonces must be exactly 24 bytes long.
type NonceSizeError int

// Error returns a formatted error message describing the invalid nonce size.
func (n NonceSizeError) Error() string {
	return fmt.Sprintf("veil/stream/xsalsa20: invalid nonce size %d, must be exactly 24 bytes", int(n))
}
