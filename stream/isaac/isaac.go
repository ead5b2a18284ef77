// Package isaac implements the ISAAC keystream generator as a stream
// cipher engine: a 256-word table and three scalars advanced with shifts
// and indirection, yielding 256 output words per round.
package isaac

import (
	"github.com/dromara/veil/stream"
	"github.com/dromara/veil/util"
)

// StateSize is the stride in bytes of one ISAAC round (256 words).
const StateSize = 1024

// Engine is an ISAAC stream cipher engine seeded from a variable-length
// key. ISAAC takes no nonce.
type Engine struct {
	mem         [256]uint32
	rsl         [256]uint32
	a, b, c     uint32
	im          [256]uint32 // post-Init snapshot for Reset
	ia, ib, ic  uint32
	ks          stream.Keystream
	initialised bool
}

// New returns an uninitialized ISAAC engine.
func New() *Engine {
	return &Engine{ks: stream.NewKeystream(StateSize)}
}

// AlgorithmName returns "ISAAC".
func (e *Engine) AlgorithmName() string { return "ISAAC" }

// StateSize returns the 1024-byte round stride.
func (e *Engine) StateSize() int { return StateSize }

// round runs one isaac() pass, filling rsl with 256 result words.
func (e *Engine) round() {
	e.c++
	e.b += e.c
	for i := 0; i < 256; i++ {
		x := e.mem[i]
		switch i & 3 {
		case 0:
			e.a ^= e.a << 13
		case 1:
			e.a ^= e.a >> 6
		case 2:
			e.a ^= e.a << 2
		case 3:
			e.a ^= e.a >> 16
		}
		e.a += e.mem[(i+128)&0xFF]
		y := e.mem[x>>2&0xFF] + e.a + e.b
		e.mem[i] = y
		e.b = e.mem[y>>10&0xFF] + x
		e.rsl[i] = e.b
	}
}

func mix(a, b, c, d, e, f, g, h *uint32) {
	*a ^= *b << 11
	*d += *a
	*b += *c
	*b ^= *c >> 2
	*e += *b
	*c += *d
	*c ^= *d << 8
	*f += *c
	*d += *e
	*d ^= *e >> 16
	*g += *d
	*e += *f
	*e ^= *f << 10
	*h += *e
	*f += *g
	*f ^= *g >> 4
	*a += *f
	*g += *h
	*g ^= *h << 8
	*b += *g
	*h += *a
	*h ^= *a >> 9
	*c += *h
	*a += *b
}

// Init seeds the generator from the key bytes, folded into the seed words
// little-endian, and runs the standard golden-ratio initialization. The key
// must be non-empty and at most 1024 bytes; ISAAC takes no nonce.
func (e *Engine) Init(encrypting bool, key, nonce []byte) error {
	if len(key) == 0 || len(key) > 1024 {
		return KeySizeError(len(key))
	}
	if len(nonce) != 0 {
		return NonceSizeError(len(nonce))
	}

	var seed [256]uint32
	for i, k := range key {
		seed[i/4] |= uint32(k) << (uint(i%4) * 8)
	}

	a, b, c, d := uint32(0x9e3779b9), uint32(0x9e3779b9), uint32(0x9e3779b9), uint32(0x9e3779b9)
	f, g, h, j := a, a, a, a
	for i := 0; i < 4; i++ {
		mix(&a, &b, &c, &d, &f, &g, &h, &j)
	}
	for i := 0; i < 256; i += 8 {
		a += seed[i]
		b += seed[i+1]
		c += seed[i+2]
		d += seed[i+3]
		f += seed[i+4]
		g += seed[i+5]
		h += seed[i+6]
		j += seed[i+7]
		mix(&a, &b, &c, &d, &f, &g, &h, &j)
		e.mem[i], e.mem[i+1], e.mem[i+2], e.mem[i+3] = a, b, c, d
		e.mem[i+4], e.mem[i+5], e.mem[i+6], e.mem[i+7] = f, g, h, j
	}
	for i := 0; i < 256; i += 8 {
		a += e.mem[i]
		b += e.mem[i+1]
		c += e.mem[i+2]
		d += e.mem[i+3]
		f += e.mem[i+4]
		g += e.mem[i+5]
		h += e.mem[i+6]
		j += e.mem[i+7]
		mix(&a, &b, &c, &d, &f, &g, &h, &j)
		e.mem[i], e.mem[i+1], e.mem[i+2], e.mem[i+3] = a, b, c, d
		e.mem[i+4], e.mem[i+5], e.mem[i+6], e.mem[i+7] = f, g, h, j
	}
	e.a, e.b, e.c = 0, 0, 0
	util.WipeUint32(seed[:])

	e.im = e.mem
	e.ia, e.ib, e.ic = e.a, e.b, e.c
	e.ks.Rewind()
	e.initialised = true
	return nil
}

// step serializes one isaac() round little-endian into the block.
func (e *Engine) step(block []byte) {
	e.round()
	for i, w := range e.rsl {
		util.PackUint32LE(block[i*4:], w)
	}
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
	e.mem = e.im
	e.a, e.b, e.c = e.ia, e.ib, e.ic
	util.WipeUint32(e.rsl[:])
	e.ks.Rewind()
	return nil
}

// Clear zeroizes the key-derived state.
func (e *Engine) Clear() {
	util.WipeUint32(e.mem[:])
	util.WipeUint32(e.im[:])
	util.WipeUint32(e.rsl[:])
	e.a, e.b, e.c, e.ia, e.ib, e.ic = 0, 0, 0, 0, 0, 0
	e.ks.Wipe()
	e.initialised = false
}
