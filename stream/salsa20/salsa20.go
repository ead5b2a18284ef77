// Package salsa20 implements the Salsa20/20 stream cipher engine and the
// Salsa20 core/HSalsa20 functions shared with the XSalsa20 engine and the
// NaCl-compatible X25519 mode.
package salsa20

import (
	"github.com/dromara/veil/stream"
	"github.com/dromara/veil/util"
)

// StateSize is the stride in bytes of one Salsa20 block.
const StateSize = 64

// Engine is a Salsa20/20 stream cipher engine supporting 16- and 32-byte
// keys with an 8-byte nonce. The block counter occupies state words 8 and 9;
// generating past 2^70 bytes under one (key, nonce) trips the soft limit.
type Engine struct {
	state       [16]uint32 // next block input; words 8,9 are the counter
	init        [16]uint32 // post-Init snapshot for Reset
	ks          stream.Keystream
	exhausted   bool
	initialised bool
}

// New returns an uninitialized Salsa20 engine.
func New() *Engine {
	return &Engine{ks: stream.NewKeystream(StateSize)}
}

// AlgorithmName returns "Salsa20".
func (e *Engine) AlgorithmName() string { return "Salsa20" }

// StateSize returns the 64-byte block stride.
func (e *Engine) StateSize() int { return StateSize }

// Init builds the cipher state from key and nonce. The key must be 16 or
// 32 bytes and the nonce exactly 8 bytes. Salsa20 is its own inverse, so
// encrypting is accepted silently either way.
func (e *Engine) Init(encrypting bool, key, nonce []byte) error {
	if len(key) != 16 && len(key) != 32 {
		return KeySizeError(len(key))
	}
	if len(nonce) != 8 {
		return NonceSizeError(len(nonce))
	}

	diag := &Sigma
	if len(key) == 16 {
		diag = &Tau
		key = append(append([]byte{}, key...), key...)
	}

	e.state[0] = diag[0]
	e.state[5] = diag[1]
	e.state[10] = diag[2]
	e.state[15] = diag[3]
	for i := 0; i < 4; i++ {
		e.state[1+i] = util.UnpackUint32LE(key[i*4:])
		e.state[11+i] = util.UnpackUint32LE(key[16+i*4:])
	}
	e.state[6] = util.UnpackUint32LE(nonce[0:])
	e.state[7] = util.UnpackUint32LE(nonce[4:])
	e.state[8] = 0
	e.state[9] = 0

	e.init = e.state
	e.ks.Rewind()
	e.exhausted = false
	e.initialised = true
	return nil
}

// step generates the next 64-byte block and advances the 64-bit counter,
// carrying word 8 into word 9 on wrap. When the counter returns to zero the
// full 2^70-byte budget is spent and the engine marks itself exhausted.
func (e *Engine) step(block []byte) {
	Core(&e.state, block)
	e.state[8]++
	if e.state[8] == 0 {
		e.state[9]++
		if e.state[9] == 0 {
			e.exhausted = true
		}
	}
}

// ProcessBytes XORs length bytes of keystream with in, writing to out.
func (e *Engine) ProcessBytes(in []byte, inOff, length int, out []byte, outOff int) error {
	if !e.initialised {
		return stream.NotInitializedError{Algorithm: e.AlgorithmName()}
	}
	if e.exhausted {
		return stream.MaxBytesExceededError{Algorithm: e.AlgorithmName()}
	}
	if err := stream.CheckArgs(e.AlgorithmName(), in, inOff, length, out, outOff); err != nil {
		return err
	}
	e.ks.XOR(out[outOff:], in[inOff:], length, e.step)
	return nil
}

// ReturnByte processes a single byte.
func (e *Engine) ReturnByte(b byte) (byte, error) {
	if !e.initialised {
		return 0, stream.NotInitializedError{Algorithm: e.AlgorithmName()}
	}
	if e.exhausted {
		return 0, stream.MaxBytesExceededError{Algorithm: e.AlgorithmName()}
	}
	return b ^ e.ks.Next(e.step), nil
}

// GetKeystream emits raw keystream without XOR.
func (e *Engine) GetKeystream(buf []byte, off, length int) error {
	if !e.initialised {
		return stream.NotInitializedError{Algorithm: e.AlgorithmName()}
	}
	if e.exhausted {
		return stream.MaxBytesExceededError{Algorithm: e.AlgorithmName()}
	}
	if err := stream.CheckOut(e.AlgorithmName(), buf, off, length); err != nil {
		return err
	}
	e.ks.Raw(buf[off:], length, e.step)
	return nil
}

// Reset restores the exact post-Init state.
func (e *Engine) Reset() error {
	if !e.initialised {
		return stream.NotInitializedError{Algorithm: e.AlgorithmName()}
	}
	e.state = e.init
	e.ks.Rewind()
	e.exhausted = false
	return nil
}

// Clear zeroizes the key-derived state.
func (e *Engine) Clear() {
	util.WipeUint32(e.state[:])
	util.WipeUint32(e.init[:])
	e.ks.Wipe()
	e.initialised = false
}
