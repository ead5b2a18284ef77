package mux

import (
	"encoding/hex"
	"fmt"
)

// SchemeBoundsError represents an error when scheme range parameters fall
// outside the legal bounds at construction.
type SchemeBoundsError struct {
	Scheme  Scheme
	Minimum int
	Maximum int
}

// Error returns a formatted error message describing the illegal bounds.
func (e SchemeBoundsError) Error() string {
	return fmt.Sprintf("veil/mux: illegal %s bounds [%d, %d]", e.Scheme, e.Minimum, e.Maximum)
}

// NoItemsError represents an error when a mux is constructed over an empty
// item set.
type NoItemsError struct{}

// Error returns the fixed error message for an empty item set.
func (NoItemsError) Error() string {
	return "veil/mux: item set cannot be empty"
}

// DuplicateItemError represents an error when two items share an
// identifier.
type DuplicateItemError ItemID

// Error returns a formatted error message naming the duplicated identifier.
func (e DuplicateItemError) Error() string {
	return fmt.Sprintf("veil/mux: duplicate item identifier %s", hex.EncodeToString(e[:]))
}

// MissingPreKeyError represents an error when the pre-key map lacks an
// entry for an item.
type MissingPreKeyError ItemID

// Error returns a formatted error message naming the keyless item.
func (e MissingPreKeyError) Error() string {
	return fmt.Sprintf("veil/mux: no pre-key for item %s", hex.EncodeToString(e[:]))
}

// ItemConfigError represents an error when an item's configuration is
// incomplete for the session direction.
type ItemConfigError struct {
	ID     ItemID
	Reason string
}

// Error returns a formatted error message describing the misconfiguration.
func (e ItemConfigError) Error() string {
	return fmt.Sprintf("veil/mux: item %s misconfigured: %s", hex.EncodeToString(e.ID[:]), e.Reason)
}

// UnknownSkipItemError represents an error when the skip register names an
// identifier outside the item set.
type UnknownSkipItemError ItemID

// Error returns a formatted error message naming the unknown identifier.
func (e UnknownSkipItemError) Error() string {
	return fmt.Sprintf("veil/mux: skip register names unknown item %s", hex.EncodeToString(e[:]))
}

// SkipWhileWritingError represents an error when a skip register is
// supplied to a writing mux, which is a contract violation.
type SkipWhileWritingError struct{}

// Error returns the fixed error message for write-direction skips.
func (SkipWhileWritingError) Error() string {
	return "veil/mux: skip register is read-direction only"
}

// UnknownItemIndexError represents an error when an operation names an
// index outside the item set.
type UnknownItemIndexError int

// Error returns a formatted error message with the offending index.
func (e UnknownItemIndexError) Error() string {
	return fmt.Sprintf("veil/mux: item index %d out of range", int(e))
}

// ItemCompletedError represents an error when an operation targets an item
// already in the completion register.
type ItemCompletedError ItemID

// Error returns a formatted error message naming the finished item.
func (e ItemCompletedError) Error() string {
	return fmt.Sprintf("veil/mux: item %s already completed", hex.EncodeToString(e[:]))
}

// SessionCompleteError represents an error when a schedule step is
// requested after every item has finished.
type SessionCompleteError struct{}

// Error returns the fixed error message for a finished session.
func (SessionCompleteError) Error() string {
	return "veil/mux: all items completed"
}

// LengthMismatchError represents an error when an item's declared length
// disagrees with the bytes actually ciphered at finish. Fatal for the
// session.
type LengthMismatchError struct {
	ID   ItemID
	Want int64
	Got  int64
}

// Error returns a formatted error message with the disagreeing lengths.
func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("veil/mux: item %s length mismatch: declared %d, processed %d", hex.EncodeToString(e.ID[:]), e.Want, e.Got)
}

// AuthenticationFailedError represents an EtM tag mismatch at item finish.
// Fatal for the item and session; plaintext produced so far must be
// discarded.
type AuthenticationFailedError ItemID

// Error returns a formatted error message naming the failed item.
func (e AuthenticationFailedError) Error() string {
	return fmt.Sprintf("veil/mux: item %s failed authentication", hex.EncodeToString(e[:]))
}

// UnknownMACError represents an error when a MAC scheme name is not
// supported.
type UnknownMACError MACScheme

// Error returns a formatted error message naming the unknown scheme.
func (e UnknownMACError) Error() string {
	return fmt.Sprintf("veil/mux: unknown MAC scheme %q", string(e))
}

// MACKeySizeError represents an error when a MAC key has the wrong length.
type MACKeySizeError int

// Error returns a formatted error message describing the invalid key size.
func (e MACKeySizeError) Error() string {
	return fmt.Sprintf("veil/mux: invalid MAC key size %d", int(e))
}

// KDFError represents an error during per-item key derivation.
type KDFError struct {
	Err error
}

// Error returns a formatted error message wrapping the derivation failure.
func (e KDFError) Error() string {
	return fmt.Sprintf("veil/mux: item key derivation failed: %v", e.Err)
}

// StreamError represents an error from the multiplexed stream or an item
// binding.
type StreamError struct {
	Err error
}

// Error returns a formatted error message wrapping the stream failure.
func (e StreamError) Error() string {
	return fmt.Sprintf("veil/mux: stream operation failed: %v", e.Err)
}

// RingFullError represents an error when the overflow buffer cannot absorb
// a cipher-final expansion, which indicates a sizing bug upstream.
type RingFullError struct {
	Need int
	Free int
}

// Error returns a formatted error message with the capacity shortfall.
func (e RingFullError) Error() string {
	return fmt.Sprintf("veil/mux: overflow buffer full: need %d bytes, free %d", e.Need, e.Free)
}
