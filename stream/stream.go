// Package stream defines the uniform contract satisfied by every stream
// cipher engine in the library, together with the shared keystream buffering
// that makes ProcessBytes output independent of how a byte count is split
// across calls.
//
// Engines live in the subpackages (hc128, hc256, rabbit, salsa20, chacha,
// xsalsa20, sosemanuk, isaac); the engines subpackage resolves algorithm
// names to constructors.
package stream

// Cipher is the capability contract every stream cipher engine satisfies.
//
// An engine is single-session: Init builds the internal state for one
// (key, nonce) pair, ProcessBytes XORs generated keystream into caller
// buffers, and Reset restores the exact post-Init state. Engines are not
// safe for concurrent use; callers serialize operations per instance.
type Cipher interface {
	// AlgorithmName returns the canonical cipher name, including the
	// round-count variant where one exists (e.g. "ChaCha12").
	AlgorithmName() string

	// StateSize returns the stride in bytes of the cipher's bulk step.
	StateSize() int

	// Init validates the key and nonce sizes and deterministically builds
	// the engine state. Engines for which encryption and decryption are the
	// same operation accept either value of encrypting silently.
	Init(encrypting bool, key, nonce []byte) error

	// ProcessBytes XORs length bytes of keystream against in starting at
	// inOff, writing the combined bytes to out starting at outOff. A partial
	// keystream block is carried across calls, so any split of a byte count
	// over successive calls produces identical output.
	ProcessBytes(in []byte, inOff, length int, out []byte, outOff int) error

	// ReturnByte processes a single byte of input.
	ReturnByte(b byte) (byte, error)

	// GetKeystream writes length bytes of raw keystream into buf at off,
	// advancing the cipher exactly as ProcessBytes would.
	GetKeystream(buf []byte, off, length int) error

	// Reset restores the engine to its post-Init state. Nonce reuse
	// protection is the caller's contract, not the engine's.
	Reset() error

	// Clear zeroizes all key-derived state. The engine must be
	// re-initialized before further use.
	Clear()
}
