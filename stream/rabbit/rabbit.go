// Package rabbit implements the Rabbit stream cipher engine from the
// eSTREAM portfolio: eight state words, eight counter words and a carry,
// advanced with the g-function and fixed counter constants, producing
// sixteen keystream bytes per step.
package rabbit

import (
	"github.com/dromara/veil/stream"
	"github.com/dromara/veil/util"
)

// StateSize is the stride in bytes of one Rabbit step.
const StateSize = 16

// Engine is a Rabbit stream cipher engine with a 16-byte key and an 8-byte
// nonce.
type Engine struct {
	x, c         [8]uint32 // working state and counters
	ix, ic       [8]uint32 // post-Init snapshot for Reset
	carry, icarr bool
	ks           stream.Keystream
	initialised  bool
}

// New returns an uninitialized Rabbit engine.
func New() *Engine {
	return &Engine{ks: stream.NewKeystream(StateSize)}
}

// AlgorithmName returns "Rabbit".
func (e *Engine) AlgorithmName() string { return "Rabbit" }

// StateSize returns the 16-byte step stride.
func (e *Engine) StateSize() int { return StateSize }

func rotl(v uint32, n uint) uint32 {
	return v<<n | v>>(32-n)
}

// g is the Rabbit g-function: square to 64 bits, fold high into low.
func g(x uint32) uint32 {
	a := x & 0xFFFF
	b := x >> 16
	return ((a*a>>17+a*b)>>15 + b*b) ^ (x * x)
}

func b2i(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// next advances the counter system and the state words by one step.
func (e *Engine) next() {
	var c [8]uint32
	c[0] = e.c[0] + 0x4D34D34D + b2i(e.carry)
	c[1] = e.c[1] + 0xD34D34D3 + b2i(c[0] < e.c[0])
	c[2] = e.c[2] + 0x34D34D34 + b2i(c[1] < e.c[1])
	c[3] = e.c[3] + 0x4D34D34D + b2i(c[2] < e.c[2])
	c[4] = e.c[4] + 0xD34D34D3 + b2i(c[3] < e.c[3])
	c[5] = e.c[5] + 0x34D34D34 + b2i(c[4] < e.c[4])
	c[6] = e.c[6] + 0x4D34D34D + b2i(c[5] < e.c[5])
	c[7] = e.c[7] + 0xD34D34D3 + b2i(c[6] < e.c[6])
	e.carry = c[7] < e.c[7]
	e.c = c

	var gv [8]uint32
	for i := 0; i < 8; i++ {
		gv[i] = g(e.x[i] + c[i])
	}
	e.x[0] = gv[0] + rotl(gv[7], 16) + rotl(gv[6], 16)
	e.x[1] = gv[1] + rotl(gv[0], 8) + gv[7]
	e.x[2] = gv[2] + rotl(gv[1], 16) + rotl(gv[0], 16)
	e.x[3] = gv[3] + rotl(gv[2], 8) + gv[1]
	e.x[4] = gv[4] + rotl(gv[3], 16) + rotl(gv[2], 16)
	e.x[5] = gv[5] + rotl(gv[4], 8) + gv[3]
	e.x[6] = gv[6] + rotl(gv[5], 16) + rotl(gv[4], 16)
	e.x[7] = gv[7] + rotl(gv[6], 8) + gv[5]
}

// step extracts sixteen keystream bytes after one state advance.
func (e *Engine) step(block []byte) {
	e.next()
	util.PackUint32LE(block[0:], e.x[0]^(e.x[5]>>16^e.x[3]<<16))
	util.PackUint32LE(block[4:], e.x[2]^(e.x[7]>>16^e.x[5]<<16))
	util.PackUint32LE(block[8:], e.x[4]^(e.x[1]>>16^e.x[7]<<16))
	util.PackUint32LE(block[12:], e.x[6]^(e.x[3]>>16^e.x[1]<<16))
}

// Init performs the Rabbit key setup followed by the IV setup. The key must
// be exactly 16 bytes and the nonce exactly 8 bytes.
func (e *Engine) Init(encrypting bool, key, nonce []byte) error {
	if len(key) != 16 {
		return KeySizeError(len(key))
	}
	if len(nonce) != 8 {
		return NonceSizeError(len(nonce))
	}

	k0 := util.UnpackUint32LE(key[0:])
	k1 := util.UnpackUint32LE(key[4:])
	k2 := util.UnpackUint32LE(key[8:])
	k3 := util.UnpackUint32LE(key[12:])

	e.x[0] = k0
	e.x[2] = k1
	e.x[4] = k2
	e.x[6] = k3
	e.x[1] = k3<<16 | k2>>16
	e.x[3] = k0<<16 | k3>>16
	e.x[5] = k1<<16 | k0>>16
	e.x[7] = k2<<16 | k1>>16

	e.c[0] = rotl(k2, 16)
	e.c[2] = rotl(k3, 16)
	e.c[4] = rotl(k0, 16)
	e.c[6] = rotl(k1, 16)
	e.c[1] = k0&0xFFFF0000 | k1&0xFFFF
	e.c[3] = k1&0xFFFF0000 | k2&0xFFFF
	e.c[5] = k2&0xFFFF0000 | k3&0xFFFF
	e.c[7] = k3&0xFFFF0000 | k0&0xFFFF
	e.carry = false

	for i := 0; i < 4; i++ {
		e.next()
	}
	for i := range e.c {
		e.c[i] ^= e.x[(i+4)&7]
	}

	// IV setup re-derives the counters from the master counter state.
	d0 := util.UnpackUint32LE(nonce[0:])
	d2 := util.UnpackUint32LE(nonce[4:])
	d1 := d0>>16 | d2&0xFFFF0000
	d3 := d2<<16 | d0&0xFFFF
	e.c[0] ^= d0
	e.c[1] ^= d1
	e.c[2] ^= d2
	e.c[3] ^= d3
	e.c[4] ^= d0
	e.c[5] ^= d1
	e.c[6] ^= d2
	e.c[7] ^= d3
	for i := 0; i < 4; i++ {
		e.next()
	}

	e.ix = e.x
	e.ic = e.c
	e.icarr = e.carry
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
	e.x = e.ix
	e.c = e.ic
	e.carry = e.icarr
	e.ks.Rewind()
	return nil
}

// Clear zeroizes the key-derived state.
func (e *Engine) Clear() {
	util.WipeUint32(e.x[:])
	util.WipeUint32(e.c[:])
	util.WipeUint32(e.ix[:])
	util.WipeUint32(e.ic[:])
	e.carry, e.icarr = false, false
	e.ks.Wipe()
	e.initialised = false
}
