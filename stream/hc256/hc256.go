// Package hc256 implements the HC-256 stream cipher engine: two 1024-word
// tables driven by an 11-bit counter, with table-indexed g functions and
// four-way h output filters.
package hc256

import (
	"github.com/dromara/veil/stream"
	"github.com/dromara/veil/util"
)

// StateSize is the stride in bytes of one HC-256 step (one output word).
const StateSize = 4

// Engine is an HC-256 stream cipher engine with a 16- or 32-byte key and a
// nonce of 16 to 32 bytes. A 16-byte key is repeated to 32 bytes; nonces
// shorter than 32 bytes are zero-padded.
type Engine struct {
	p, q        [1024]uint32
	ip, iq      [1024]uint32 // post-Init snapshot for Reset
	counter     uint32       // 11-bit step counter
	ks          stream.Keystream
	initialised bool
}

// New returns an uninitialized HC-256 engine.
func New() *Engine {
	return &Engine{ks: stream.NewKeystream(StateSize)}
}

// AlgorithmName returns "HC-256".
func (e *Engine) AlgorithmName() string { return "HC-256" }

// StateSize returns the 4-byte word stride.
func (e *Engine) StateSize() int { return StateSize }

func rotr(v uint32, n uint) uint32 {
	return v>>n | v<<(32-n)
}

func f1(x uint32) uint32 { return rotr(x, 7) ^ rotr(x, 18) ^ x>>3 }
func f2(x uint32) uint32 { return rotr(x, 17) ^ rotr(x, 19) ^ x>>10 }

func (e *Engine) g1(x, y uint32) uint32 {
	return (rotr(x, 10) ^ rotr(y, 23)) + e.q[(x^y)&0x3FF]
}

func (e *Engine) g2(x, y uint32) uint32 {
	return (rotr(x, 10) ^ rotr(y, 23)) + e.p[(x^y)&0x3FF]
}

func (e *Engine) h1(x uint32) uint32 {
	return e.q[x&0xFF] + e.q[256+(x>>8&0xFF)] + e.q[512+(x>>16&0xFF)] + e.q[768+(x>>24)]
}

func (e *Engine) h2(x uint32) uint32 {
	return e.p[x&0xFF] + e.p[256+(x>>8&0xFF)] + e.p[512+(x>>16&0xFF)] + e.p[768+(x>>24)]
}

// stepWord runs one cipher step, updating a table entry and returning the
// output word.
func (e *Engine) stepWord() uint32 {
	j := e.counter & 0x3FF
	var s uint32
	if e.counter < 1024 {
		e.p[j] = e.p[j] + e.p[(j-10)&0x3FF] + e.g1(e.p[(j-3)&0x3FF], e.p[(j-1023)&0x3FF])
		s = e.h1(e.p[(j-12)&0x3FF]) ^ e.p[j]
	} else {
		e.q[j] = e.q[j] + e.q[(j-10)&0x3FF] + e.g2(e.q[(j-3)&0x3FF], e.q[(j-1023)&0x3FF])
		s = e.h2(e.q[(j-12)&0x3FF]) ^ e.q[j]
	}
	e.counter = (e.counter + 1) & 0x7FF
	return s
}

func (e *Engine) step(block []byte) {
	util.PackUint32LE(block, e.stepWord())
}

// Init expands the key and nonce into the P and Q tables, then runs 4096
// priming steps whose outputs are consumed internally. The step counter is
// reset to zero after priming.
func (e *Engine) Init(encrypting bool, key, nonce []byte) error {
	if len(key) != 16 && len(key) != 32 {
		return KeySizeError(len(key))
	}
	if len(nonce) < 16 || len(nonce) > 32 {
		return NonceSizeError(len(nonce))
	}

	var k, iv [32]byte
	copy(k[:], key)
	if len(key) == 16 {
		copy(k[16:], key)
	}
	copy(iv[:], nonce)

	w := make([]uint32, 2560)
	for i := 0; i < 8; i++ {
		w[i] = util.UnpackUint32LE(k[i*4:])
		w[i+8] = util.UnpackUint32LE(iv[i*4:])
	}
	for i := 16; i < 2560; i++ {
		w[i] = f2(w[i-2]) + w[i-7] + f1(w[i-15]) + w[i-16] + uint32(i)
	}
	copy(e.p[:], w[512:1536])
	copy(e.q[:], w[1536:2560])
	util.WipeUint32(w)
	util.WipeBytes(k[:])

	// Priming: 4096 steps with the output words discarded.
	e.counter = 0
	for i := 0; i < 4096; i++ {
		e.stepWord()
	}
	e.counter = 0

	e.ip = e.p
	e.iq = e.q
	e.ks.Rewind()
	e.initialised = true
	return nil
}

// ProcessBytes XORs length bytes of keystream with in, writing to out.
func (e *Engine) ProcessBytes(in []byte, inOff, length int, out []byte, outOff int) error {
	if !e.initialised {
		return stream.NotInitializedError{Algorithm: e.AlgorithmName()}
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
	return b ^ e.ks.Next(e.step), nil
}

// GetKeystream emits raw keystream without XOR.
func (e *Engine) GetKeystream(buf []byte, off, length int) error {
	if !e.initialised {
		return stream.NotInitializedError{Algorithm: e.AlgorithmName()}
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
	e.p = e.ip
	e.q = e.iq
	e.counter = 0
	e.ks.Rewind()
	return nil
}

// Clear zeroizes the key-derived tables.
func (e *Engine) Clear() {
	util.WipeUint32(e.p[:])
	util.WipeUint32(e.q[:])
	util.WipeUint32(e.ip[:])
	util.WipeUint32(e.iq[:])
	e.counter = 0
	e.ks.Wipe()
	e.initialised = false
}
