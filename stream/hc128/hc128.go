// Package hc128 implements the HC-128 stream cipher engine from the
// eSTREAM portfolio: two 512-word tables driven by a 10-bit counter, with
// the g1/g2 update functions and h1/h2 output filters.
package hc128

import (
	"github.com/dromara/veil/stream"
	"github.com/dromara/veil/util"
)

// StateSize is the stride in bytes of one HC-128 step (one output word).
const StateSize = 4

// Engine is an HC-128 stream cipher engine with a 16-byte key and a nonce
// of up to 16 bytes (zero-padded).
type Engine struct {
	p, q        [512]uint32
	ip, iq      [512]uint32 // post-Init snapshot for Reset
	counter     uint32      // 10-bit step counter
	ks          stream.Keystream
	initialised bool
}

// New returns an uninitialized HC-128 engine.
func New() *Engine {
	return &Engine{ks: stream.NewKeystream(StateSize)}
}

// AlgorithmName returns "HC-128".
func (e *Engine) AlgorithmName() string { return "HC-128" }

// StateSize returns the 4-byte word stride.
func (e *Engine) StateSize() int { return StateSize }

func rotr(v uint32, n uint) uint32 {
	return v>>n | v<<(32-n)
}

func rotl(v uint32, n uint) uint32 {
	return v<<n | v>>(32-n)
}

func f1(x uint32) uint32 { return rotr(x, 7) ^ rotr(x, 18) ^ x>>3 }
func f2(x uint32) uint32 { return rotr(x, 17) ^ rotr(x, 19) ^ x>>10 }

// g1 and g2 use the canonical parenthesization: the rotate XOR pair is
// combined before the addition.
func g1(x, y, z uint32) uint32 { return (rotr(x, 10) ^ rotr(z, 23)) + rotr(y, 8) }
func g2(x, y, z uint32) uint32 { return (rotl(x, 10) ^ rotl(z, 23)) + rotl(y, 8) }

func (e *Engine) h1(x uint32) uint32 { return e.q[x&0xFF] + e.q[256+(x>>16&0xFF)] }
func (e *Engine) h2(x uint32) uint32 { return e.p[x&0xFF] + e.p[256+(x>>16&0xFF)] }

// stepWord runs one cipher step, updating a table entry and returning the
// output word.
func (e *Engine) stepWord() uint32 {
	j := e.counter & 0x1FF
	var s uint32
	if e.counter < 512 {
		e.p[j] += g1(e.p[(j-3)&0x1FF], e.p[(j-10)&0x1FF], e.p[(j-511)&0x1FF])
		s = e.h1(e.p[(j-12)&0x1FF]) ^ e.p[j]
	} else {
		e.q[j] += g2(e.q[(j-3)&0x1FF], e.q[(j-10)&0x1FF], e.q[(j-511)&0x1FF])
		s = e.h2(e.q[(j-12)&0x1FF]) ^ e.q[j]
	}
	e.counter = (e.counter + 1) & 0x3FF
	return s
}

func (e *Engine) step(block []byte) {
	util.PackUint32LE(block, e.stepWord())
}

// Init expands the key and nonce into the P and Q tables and runs the
// priming pass whose outputs repopulate the tables. The key must be exactly
// 16 bytes; nonces shorter than 16 bytes are zero-padded. The step counter
// is reset to zero after priming.
func (e *Engine) Init(encrypting bool, key, nonce []byte) error {
	if len(key) != 16 {
		return KeySizeError(len(key))
	}
	if len(nonce) > 16 {
		return NonceSizeError(len(nonce))
	}

	var iv [16]byte
	copy(iv[:], nonce)

	w := make([]uint32, 1280)
	for i := 0; i < 4; i++ {
		w[i] = util.UnpackUint32LE(key[i*4:])
		w[i+4] = w[i]
		w[i+8] = util.UnpackUint32LE(iv[i*4:])
		w[i+12] = w[i+8]
	}
	for i := 16; i < 1280; i++ {
		w[i] = f2(w[i-2]) + w[i-7] + f1(w[i-15]) + w[i-16] + uint32(i)
	}
	copy(e.p[:], w[256:768])
	copy(e.q[:], w[768:1280])
	util.WipeUint32(w)

	// Priming: the first 1024 step outputs replace the table entries.
	for i := uint32(0); i < 512; i++ {
		e.p[i] = (e.p[i] + g1(e.p[(i-3)&0x1FF], e.p[(i-10)&0x1FF], e.p[(i-511)&0x1FF])) ^ e.h1(e.p[(i-12)&0x1FF])
	}
	for i := uint32(0); i < 512; i++ {
		e.q[i] = (e.q[i] + g2(e.q[(i-3)&0x1FF], e.q[(i-10)&0x1FF], e.q[(i-511)&0x1FF])) ^ e.h2(e.q[(i-12)&0x1FF])
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
