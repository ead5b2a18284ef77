package salsa20

import (
	"github.com/dromara/veil/util"
)

// Sigma and Tau are the Salsa20 diagonal constants for 32-byte and 16-byte
// keys ("expand 32-byte k" / "expand 16-byte k").
var (
	Sigma = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}
	Tau   = [4]uint32{0x61707865, 0x3120646e, 0x79622d36, 0x6b206574}
)

func rotl(v uint32, n uint) uint32 {
	return v<<n | v>>(32-n)
}

// rounds applies n/2 Salsa20 double rounds to x in place.
func rounds(x *[16]uint32, n int) {
	for i := 0; i < n; i += 2 {
		// column round
		x[4] ^= rotl(x[0]+x[12], 7)
		x[8] ^= rotl(x[4]+x[0], 9)
		x[12] ^= rotl(x[8]+x[4], 13)
		x[0] ^= rotl(x[12]+x[8], 18)
		x[9] ^= rotl(x[5]+x[1], 7)
		x[13] ^= rotl(x[9]+x[5], 9)
		x[1] ^= rotl(x[13]+x[9], 13)
		x[5] ^= rotl(x[1]+x[13], 18)
		x[14] ^= rotl(x[10]+x[6], 7)
		x[2] ^= rotl(x[14]+x[10], 9)
		x[6] ^= rotl(x[2]+x[14], 13)
		x[10] ^= rotl(x[6]+x[2], 18)
		x[3] ^= rotl(x[15]+x[11], 7)
		x[7] ^= rotl(x[3]+x[15], 9)
		x[11] ^= rotl(x[7]+x[3], 13)
		x[15] ^= rotl(x[11]+x[7], 18)
		// row round
		x[1] ^= rotl(x[0]+x[3], 7)
		x[2] ^= rotl(x[1]+x[0], 9)
		x[3] ^= rotl(x[2]+x[1], 13)
		x[0] ^= rotl(x[3]+x[2], 18)
		x[6] ^= rotl(x[5]+x[4], 7)
		x[7] ^= rotl(x[6]+x[5], 9)
		x[4] ^= rotl(x[7]+x[6], 13)
		x[5] ^= rotl(x[4]+x[7], 18)
		x[11] ^= rotl(x[10]+x[9], 7)
		x[8] ^= rotl(x[11]+x[10], 9)
		x[9] ^= rotl(x[8]+x[11], 13)
		x[10] ^= rotl(x[9]+x[8], 18)
		x[12] ^= rotl(x[15]+x[14], 7)
		x[13] ^= rotl(x[12]+x[15], 9)
		x[14] ^= rotl(x[13]+x[12], 13)
		x[15] ^= rotl(x[14]+x[13], 18)
	}
}

// Core generates one 64-byte Salsa20 block from the input state, applying
// 20 rounds and the final feed-forward addition.
func Core(in *[16]uint32, out []byte) {
	var x [16]uint32
	x = *in
	rounds(&x, 20)
	for i := 0; i < 16; i++ {
		util.PackUint32LE(out[i*4:], x[i]+in[i])
	}
}

// HSalsa20 derives a 32-byte subkey from a key and a 16-byte nonce by
// running the Salsa20 rounds without the feed-forward and extracting the
// words that are independent of the key after inversion. The diagonal
// constants must match the key length the state was built with.
func HSalsa20(out *[32]byte, nonce *[16]byte, key *[32]byte, diag *[4]uint32) {
	var x [16]uint32
	x[0] = diag[0]
	x[5] = diag[1]
	x[10] = diag[2]
	x[15] = diag[3]
	for i := 0; i < 4; i++ {
		x[1+i] = util.UnpackUint32LE(key[i*4:])
		x[11+i] = util.UnpackUint32LE(key[16+i*4:])
		x[6+i] = util.UnpackUint32LE(nonce[i*4:])
	}
	rounds(&x, 20)
	util.PackUint32LE(out[0:], x[0])
	util.PackUint32LE(out[4:], x[5])
	util.PackUint32LE(out[8:], x[10])
	util.PackUint32LE(out[12:], x[15])
	util.PackUint32LE(out[16:], x[6])
	util.PackUint32LE(out[20:], x[7])
	util.PackUint32LE(out[24:], x[8])
	util.PackUint32LE(out[28:], x[9])
}
