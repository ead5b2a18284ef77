package jpake

import "fmt"

// EmptyParticipantError represents an error when a participant identifier
// is empty.
type EmptyParticipantError struct{}

// Error returns the fixed error message for an empty identifier.
func (EmptyParticipantError) Error() string {
	return "veil/kex/jpake: participant identifier cannot be empty"
}

// EmptyPassphraseError represents an error when the shared passphrase is
// empty at session construction.
type EmptyPassphraseError struct{}

// Error returns the fixed error message for an empty passphrase.
func (EmptyPassphraseError) Error() string {
	return "veil/kex/jpake: passphrase cannot be empty"
}

// PassphraseZeroError represents an error when the passphrase reduces to
// zero modulo the group order and cannot entangle the exchange.
type PassphraseZeroError struct{}

// Error returns the fixed error message for a zero passphrase scalar.
func (PassphraseZeroError) Error() string {
	return "veil/kex/jpake: passphrase is congruent to zero modulo the group order"
}

// DuplicateParticipantError represents an error when the partner claims
// the session's own identifier.
type DuplicateParticipantError string

// Error returns a formatted error message naming the duplicated identifier.
func (e DuplicateParticipantError) Error() string {
	return fmt.Sprintf("veil/kex/jpake: partner identifier %q duplicates this participant", string(e))
}

// UnknownParticipantError represents an error when a round payload names a
// participant other than the validated partner.
type UnknownParticipantError string

// Error returns a formatted error message naming the unexpected identifier.
func (e UnknownParticipantError) Error() string {
	return fmt.Sprintf("veil/kex/jpake: payload from unknown participant %q", string(e))
}

// StateError represents an invalid protocol-state transition. The session
// object is unusable for the attempted operation but no security failure
// has occurred.
type StateError struct {
	Op    string // The attempted operation
	State State  // The state the session was in
}

// Error returns a formatted error message describing the invalid transition.
func (e StateError) Error() string {
	return fmt.Sprintf("veil/kex/jpake: %s not permitted in state %s", e.Op, e.State)
}

// ZKPInvalidError represents a failed zero-knowledge proof verification.
// The session must be abandoned.
type ZKPInvalidError struct {
	Reason string // Which check failed
}

// Error returns a formatted error message describing the failed proof.
func (e ZKPInvalidError) Error() string {
	return fmt.Sprintf("veil/kex/jpake: zero-knowledge proof invalid: %s", e.Reason)
}

// KeyConfirmationFailedError represents a round-3 tag mismatch: the
// passphrases differ or the exchange was tampered with. Treat as a
// possible man-in-the-middle.
type KeyConfirmationFailedError struct{}

// Error returns the fixed error message for a confirmation failure.
func (KeyConfirmationFailedError) Error() string {
	return "veil/kex/jpake: key confirmation failed"
}

// KeyCalculationError represents an error when the shared point
// degenerates during key derivation.
type KeyCalculationError struct {
	Err error // The underlying failure
}

// Error returns a formatted error message wrapping the failure.
func (e KeyCalculationError) Error() string {
	return fmt.Sprintf("veil/kex/jpake: keying material calculation failed: %v", e.Err)
}

// EntropyError represents an error when the random source fails during
// scalar generation.
type EntropyError struct {
	Err error // The underlying error from the entropy source
}

// Error returns a formatted error message wrapping the entropy failure.
func (e EntropyError) Error() string {
	return fmt.Sprintf("veil/kex/jpake: entropy source failed: %v", e.Err)
}

// RestoreError represents an error when a suspended session state cannot
// be restored.
type RestoreError struct {
	Reason string // Why restoration was rejected
}

// Error returns a formatted error message describing the rejected restore.
func (e RestoreError) Error() string {
	return fmt.Sprintf("veil/kex/jpake: cannot restore session: %s", e.Reason)
}
