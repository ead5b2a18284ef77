// Package curve25519 implements the X25519 function over Curve25519 using
// the ten-limb donna field representation, together with the scalar
// clamping ritual, public key derivation, shared secret computation with an
// optional NaCl-compatible HSalsa20 mode, and the Edwards-to-Montgomery
// X-coordinate conversion.
//
// All field and ladder operations are constant time with respect to secret
// inputs. Per RFC 7748, any 32-byte string is accepted as a peer public
// key; non-canonical encodings are not rejected.
package curve25519

import (
	"github.com/dromara/veil/stream/salsa20"
	"github.com/dromara/veil/util"
)

const (
	// ScalarSize is the size in bytes of an X25519 private scalar.
	ScalarSize = 32
	// PointSize is the size in bytes of an X25519 public value.
	PointSize = 32
)

// basePoint is the canonical Curve25519 generator: u = 9.
var basePoint = [32]byte{9}

// Clamp applies the Curve25519 private-key bit ritual in place:
// clear the low three bits, clear the top bit, set bit 254.
func Clamp(priv []byte) {
	priv[0] &= 0xF8
	priv[31] &= 0x7F
	priv[31] |= 0x40
}

// scalarMult computes out = n*P on Curve25519 with the Montgomery ladder,
// where base holds the u-coordinate of P. The scalar is clamped into a
// local copy first.
func scalarMult(out, in, base *[32]byte) {
	var e [32]byte
	copy(e[:], in[:])
	Clamp(e[:])

	var x1, x2, z2, x3, z3, tmp0, tmp1 fieldElement
	feFromBytes(&x1, base)
	feOne(&x2)
	feZero(&z2)
	feCopy(&x3, &x1)
	feOne(&z3)

	swap := int32(0)
	for pos := 254; pos >= 0; pos-- {
		b := int32(e[pos/8]>>uint(pos&7)) & 1
		swap ^= b
		feCSwap(&x2, &x3, swap)
		feCSwap(&z2, &z3, swap)
		swap = b

		feSub(&tmp0, &x3, &z3)
		feSub(&tmp1, &x2, &z2)
		feAdd(&x2, &x2, &z2)
		feAdd(&z2, &x3, &z3)
		feMul(&z3, &tmp0, &x2)
		feMul(&z2, &z2, &tmp1)
		feSquare(&tmp0, &tmp1)
		feSquare(&tmp1, &x2)
		feAdd(&x3, &z3, &z2)
		feSub(&z2, &z3, &z2)
		feMul(&x2, &tmp1, &tmp0)
		feSub(&tmp1, &tmp1, &tmp0)
		feSquare(&z2, &z2)
		feMul121666(&z3, &tmp1)
		feSquare(&x3, &x3)
		feAdd(&tmp0, &tmp0, &z3)
		feMul(&z3, &x1, &z2)
		feMul(&z2, &tmp1, &tmp0)
	}
	feCSwap(&x2, &x3, swap)
	feCSwap(&z2, &z3, swap)

	feInvert(&z2, &z2)
	feMul(&x2, &x2, &z2)
	feToBytes(out, &x2)
	util.WipeBytes(e[:])
}

// PublicKey derives the public value for a 32-byte private scalar:
// scalarmult of the clamped scalar against the generator u = 9.
func PublicKey(priv []byte) ([]byte, error) {
	if len(priv) != ScalarSize {
		return nil, ScalarSizeError(len(priv))
	}
	var in, out [32]byte
	copy(in[:], priv)
	scalarMult(&out, &in, &basePoint)
	util.WipeBytes(in[:])
	return out[:], nil
}

// SharedSecret computes the raw X25519 shared secret between a private
// scalar and a peer public value.
func SharedSecret(priv, peerPub []byte) ([]byte, error) {
	if len(priv) != ScalarSize {
		return nil, ScalarSizeError(len(priv))
	}
	if len(peerPub) != PointSize {
		return nil, PointSizeError(len(peerPub))
	}
	var in, base, out [32]byte
	copy(in[:], priv)
	copy(base[:], peerPub)
	scalarMult(&out, &in, &base)
	util.WipeBytes(in[:])
	return out[:], nil
}

// SharedSecretNaCl computes the X25519 shared secret and passes it through
// HSalsa20 under an all-zero 16-byte nonce, matching the NaCl box key
// derivation.
func SharedSecretNaCl(priv, peerPub []byte) ([]byte, error) {
	raw, err := SharedSecret(priv, peerPub)
	if err != nil {
		return nil, err
	}
	var k [32]byte
	var n [16]byte
	var out [32]byte
	copy(k[:], raw)
	salsa20.HSalsa20(&out, &n, &k, &salsa20.Sigma)
	util.WipeBytes(k[:])
	util.WipeBytes(raw)
	return out[:], nil
}

// MontgomeryX converts an Ed25519 group element, given by its encoded
// y-coordinate, to the Curve25519 u-coordinate via u = (1+y)/(1-y)
// (equivalently (Z+Y)/(Z-Y) in projective terms). The sign bit of the
// encoding is ignored; the exceptional point y = 1 is rejected.
func MontgomeryX(edPoint []byte) ([]byte, error) {
	if len(edPoint) != PointSize {
		return nil, PointSizeError(len(edPoint))
	}
	var yb [32]byte
	copy(yb[:], edPoint)
	yb[31] &= 0x7F

	var y, one, num, den fieldElement
	feFromBytes(&y, &yb)
	feOne(&one)
	feAdd(&num, &one, &y)
	feSub(&den, &one, &y)

	var denBytes [32]byte
	feToBytes(&denBytes, &den)
	zero := true
	for _, b := range denBytes {
		if b != 0 {
			zero = false
		}
	}
	if zero {
		return nil, InvalidPointError{}
	}

	feInvert(&den, &den)
	feMul(&num, &num, &den)
	var out [32]byte
	feToBytes(&out, &num)
	return out[:], nil
}
