// Package sosemanuk implements the SOSEMANUK stream cipher engine from the
// eSTREAM portfolio: a ten-word LFSR over GF(2^32) and a two-register FSM,
// keyed through a Serpent24 schedule, producing 80 keystream bytes per
// block via the Serpent S2 output transform.
package sosemanuk

import (
	"github.com/dromara/veil/stream"
	"github.com/dromara/veil/util"
)

// StateSize is the stride in bytes of one SOSEMANUK block (20 words).
const StateSize = 80

// Engine is a SOSEMANUK stream cipher engine. Keys of 8 to 32 bytes are
// padded to 32 with 0x01 then zero fill; nonces of 4 to 16 bytes are
// zero-padded to 16.
type Engine struct {
	s           [10]uint32 // LFSR registers s_t .. s_t+9
	r1, r2      uint32     // FSM registers
	is          [10]uint32 // post-Init snapshot for Reset
	ir1, ir2    uint32
	ks          stream.Keystream
	initialised bool
}

// New returns an uninitialized SOSEMANUK engine.
func New() *Engine {
	return &Engine{ks: stream.NewKeystream(StateSize)}
}

// AlgorithmName returns "SOSEMANUK".
func (e *Engine) AlgorithmName() string { return "SOSEMANUK" }

// StateSize returns the 80-byte block stride.
func (e *Engine) StateSize() int { return StateSize }

// Init runs the Serpent24 key schedule over the padded key, injects the IV
// through Serpent24 encryption, and loads the LFSR and FSM from the round
// 12, 18 and 24 outputs.
func (e *Engine) Init(encrypting bool, key, nonce []byte) error {
	if len(key) < 8 || len(key) > 32 {
		return KeySizeError(len(key))
	}
	if len(nonce) < 4 || len(nonce) > 16 {
		return NonceSizeError(len(nonce))
	}

	var padded [32]byte
	copy(padded[:], key)
	if len(key) < 32 {
		padded[len(key)] = 0x01
	}
	var sk [100]uint32
	keySchedule24(&padded, &sk)
	util.WipeBytes(padded[:])

	var ivb [16]byte
	copy(ivb[:], nonce)
	var iv [4]uint32
	for i := 0; i < 4; i++ {
		iv[i] = util.UnpackUint32LE(ivb[i*4:])
	}

	out12, out18, out24 := serpent24(&sk, &iv)
	util.WipeUint32(sk[:])

	e.s[9], e.s[8], e.s[7], e.s[6] = out12[0], out12[1], out12[2], out12[3]
	e.r1, e.s[4], e.r2, e.s[5] = out18[0], out18[1], out18[2], out18[3]
	e.s[3], e.s[2], e.s[1], e.s[0] = out24[0], out24[1], out24[2], out24[3]

	e.is = e.s
	e.ir1, e.ir2 = e.r1, e.r2
	e.ks.Rewind()
	e.initialised = true
	return nil
}

func rotl(v uint32, n uint) uint32 {
	return v<<n | v>>(32-n)
}

// step produces one 80-byte block: five groups of four LFSR/FSM steps, each
// group finished by a Serpent S2 application over the intermediate words.
func (e *Engine) step(block []byte) {
	for g := 0; g < 5; g++ {
		var f, v [4]uint32
		for i := 0; i < 4; i++ {
			tt := e.r1
			if tt&1 != 0 {
				e.r1 = e.r2 + (e.s[1] ^ e.s[8])
			} else {
				e.r1 = e.r2 + e.s[1]
			}
			e.r2 = rotl(tt*0x54655307, 7)
			f[i] = (e.s[9] + e.r1) ^ e.r2
			v[i] = e.s[0]
			nw := e.s[9] ^ divAlpha(e.s[3]) ^ mulAlpha(e.s[0])
			copy(e.s[:9], e.s[1:])
			e.s[9] = nw
		}
		applySbox(2, &f[0], &f[1], &f[2], &f[3])
		for i := 0; i < 4; i++ {
			util.PackUint32LE(block[g*16+i*4:], f[i]^v[i])
		}
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
	e.s = e.is
	e.r1, e.r2 = e.ir1, e.ir2
	e.ks.Rewind()
	return nil
}

// Clear zeroizes the key-derived state.
func (e *Engine) Clear() {
	util.WipeUint32(e.s[:])
	util.WipeUint32(e.is[:])
	e.r1, e.r2, e.ir1, e.ir2 = 0, 0, 0, 0
	e.ks.Wipe()
	e.initialised = false
}
