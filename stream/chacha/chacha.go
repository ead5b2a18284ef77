// Package chacha implements the ChaCha stream cipher engine in its 8-, 12-
// and 20-round variants. ChaCha shares the Salsa20 state shape with the
// counter relocated to words 12 and 13 and a quarter round with improved
// per-round diffusion.
package chacha

import (
	"github.com/dromara/veil/stream"
	"github.com/dromara/veil/stream/salsa20"
	"github.com/dromara/veil/util"
)

// StateSize is the stride in bytes of one ChaCha block.
const StateSize = 64

// Engine is a ChaCha stream cipher engine supporting 16- and 32-byte keys
// with an 8-byte nonce. The block counter occupies state words 12 and 13.
type Engine struct {
	state       [16]uint32
	init        [16]uint32
	rounds      int
	ks          stream.Keystream
	exhausted   bool
	initialised bool
}

// New returns an uninitialized ChaCha engine with the given round count.
// Rounds must be 8, 12 or 20.
func New(rounds int) (*Engine, error) {
	if rounds != 8 && rounds != 12 && rounds != 20 {
		return nil, RoundCountError(rounds)
	}
	return &Engine{rounds: rounds, ks: stream.NewKeystream(StateSize)}, nil
}

// AlgorithmName returns the variant name, e.g. "ChaCha20".
func (e *Engine) AlgorithmName() string {
	switch e.rounds {
	case 8:
		return "ChaCha8"
	case 12:
		return "ChaCha12"
	}
	return "ChaCha20"
}

// StateSize returns the 64-byte block stride.
func (e *Engine) StateSize() int { return StateSize }

// Init builds the cipher state from key and nonce. The key must be 16 or
// 32 bytes and the nonce exactly 8 bytes.
func (e *Engine) Init(encrypting bool, key, nonce []byte) error {
	if len(key) != 16 && len(key) != 32 {
		return KeySizeError(len(key))
	}
	if len(nonce) != 8 {
		return NonceSizeError(len(nonce))
	}

	diag := &salsa20.Sigma
	if len(key) == 16 {
		diag = &salsa20.Tau
		key = append(append([]byte{}, key...), key...)
	}

	e.state[0] = diag[0]
	e.state[1] = diag[1]
	e.state[2] = diag[2]
	e.state[3] = diag[3]
	for i := 0; i < 8; i++ {
		e.state[4+i] = util.UnpackUint32LE(key[i*4:])
	}
	e.state[12] = 0
	e.state[13] = 0
	e.state[14] = util.UnpackUint32LE(nonce[0:])
	e.state[15] = util.UnpackUint32LE(nonce[4:])

	e.init = e.state
	e.ks.Rewind()
	e.exhausted = false
	e.initialised = true
	return nil
}

func rotl(v uint32, n uint) uint32 {
	return v<<n | v>>(32-n)
}

func quarterRound(x *[16]uint32, a, b, c, d int) {
	x[a] += x[b]
	x[d] = rotl(x[d]^x[a], 16)
	x[c] += x[d]
	x[b] = rotl(x[b]^x[c], 12)
	x[a] += x[b]
	x[d] = rotl(x[d]^x[a], 8)
	x[c] += x[d]
	x[b] = rotl(x[b]^x[c], 7)
}

// core generates one 64-byte block from the current state.
func (e *Engine) core(out []byte) {
	var x [16]uint32
	x = e.state
	for i := 0; i < e.rounds; i += 2 {
		quarterRound(&x, 0, 4, 8, 12)
		quarterRound(&x, 1, 5, 9, 13)
		quarterRound(&x, 2, 6, 10, 14)
		quarterRound(&x, 3, 7, 11, 15)
		quarterRound(&x, 0, 5, 10, 15)
		quarterRound(&x, 1, 6, 11, 12)
		quarterRound(&x, 2, 7, 8, 13)
		quarterRound(&x, 3, 4, 9, 14)
	}
	for i := 0; i < 16; i++ {
		util.PackUint32LE(out[i*4:], x[i]+e.state[i])
	}
}

// step generates the next block and advances the counter, carrying word 12
// into word 13 on wrap; a full wrap back to zero marks the engine exhausted.
func (e *Engine) step(block []byte) {
	e.core(block)
	e.state[12]++
	if e.state[12] == 0 {
		e.state[13]++
		if e.state[13] == 0 {
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
