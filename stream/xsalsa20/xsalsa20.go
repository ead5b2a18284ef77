// Package xsalsa20 implements the XSalsa20 stream cipher engine: an
// HSalsa20 key derivation over the first 16 nonce bytes followed by Salsa20
// under the derived subkey and the remaining 8 nonce bytes.
package xsalsa20

import (
	"github.com/dromara/veil/stream"
	"github.com/dromara/veil/stream/salsa20"
	"github.com/dromara/veil/util"
)

// StateSize is the stride in bytes of one block, inherited from Salsa20.
const StateSize = salsa20.StateSize

// Engine is an XSalsa20 stream cipher engine supporting 16- and 32-byte
// keys with a 24-byte nonce. It owns an inner Salsa20 engine and runs the
// HSalsa20 prelude in Init.
type Engine struct {
	inner       *salsa20.Engine
	subKey      [32]byte
	initialised bool
}

// New returns an uninitialized XSalsa20 engine.
func New() *Engine {
	return &Engine{inner: salsa20.New()}
}

// AlgorithmName returns "XSalsa20".
func (e *Engine) AlgorithmName() string { return "XSalsa20" }

// StateSize returns the 64-byte block stride.
func (e *Engine) StateSize() int { return StateSize }

// Init derives the Salsa20 subkey from the first 16 nonce bytes via
// HSalsa20 and initializes the inner engine with the remaining 8 bytes.
// The key must be 16 or 32 bytes and the nonce exactly 24 bytes.
func (e *Engine) Init(encrypting bool, key, nonce []byte) error {
	if len(key) != 16 && len(key) != 32 {
		return KeySizeError(len(key))
	}
	if len(nonce) != 24 {
		return NonceSizeError(len(nonce))
	}

	diag := &salsa20.Sigma
	if len(key) == 16 {
		diag = &salsa20.Tau
		key = append(append([]byte{}, key...), key...)
	}

	var k [32]byte
	var n [16]byte
	copy(k[:], key)
	copy(n[:], nonce[:16])
	salsa20.HSalsa20(&e.subKey, &n, &k, diag)
	util.WipeBytes(k[:])

	if err := e.inner.Init(encrypting, e.subKey[:], nonce[16:]); err != nil {
		return err
	}
	e.initialised = true
	return nil
}

// ProcessBytes XORs length bytes of keystream with in, writing to out.
func (e *Engine) ProcessBytes(in []byte, inOff, length int, out []byte, outOff int) error {
	if !e.initialised {
		return stream.NotInitializedError{Algorithm: e.AlgorithmName()}
	}
	return e.inner.ProcessBytes(in, inOff, length, out, outOff)
}

// ReturnByte processes a single byte.
func (e *Engine) ReturnByte(b byte) (byte, error) {
	if !e.initialised {
		return 0, stream.NotInitializedError{Algorithm: e.AlgorithmName()}
	}
	return e.inner.ReturnByte(b)
}

// GetKeystream emits raw keystream without XOR.
func (e *Engine) GetKeystream(buf []byte, off, length int) error {
	if !e.initialised {
		return stream.NotInitializedError{Algorithm: e.AlgorithmName()}
	}
	return e.inner.GetKeystream(buf, off, length)
}

// Reset restores the exact post-Init state of the inner engine.
func (e *Engine) Reset() error {
	if !e.initialised {
		return stream.NotInitializedError{Algorithm: e.AlgorithmName()}
	}
	return e.inner.Reset()
}

// Clear zeroizes the subkey and the inner engine state.
func (e *Engine) Clear() {
	util.WipeBytes(e.subKey[:])
	e.inner.Clear()
	e.initialised = false
}
