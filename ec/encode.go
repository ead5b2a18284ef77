package ec

import (
	"math/big"
)

// SEC1 point format tags.
const (
	tagCompressedEven = 0x02
	tagCompressedOdd  = 0x03
	tagUncompressed   = 0x04
)

// padBytes left-pads the big-endian bytes of v to exactly size bytes.
func padBytes(v *big.Int, size int) []byte {
	b := v.Bytes()
	if len(b) >= size {
		return b
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}

// EncodePoint serializes the affine form of p per SEC1, compressed or
// uncompressed. The point at infinity has no encoding.
func (p *Point) EncodePoint(compressed bool) ([]byte, error) {
	x, y, err := p.Normalize()
	if err != nil {
		return nil, err
	}
	size := p.domain.FieldByteLen()
	if compressed {
		out := make([]byte, 1+size)
		out[0] = tagCompressedEven
		if y.Bit(0) == 1 {
			out[0] = tagCompressedOdd
		}
		copy(out[1:], padBytes(x, size))
		return out, nil
	}
	out := make([]byte, 1+2*size)
	out[0] = tagUncompressed
	copy(out[1:], padBytes(x, size))
	copy(out[1+size:], padBytes(y, size))
	return out, nil
}

// DecodePoint parses a SEC1 compressed or uncompressed point encoding and
// checks the result lies on the curve.
func (d *Domain) DecodePoint(b []byte) (*Point, error) {
	size := d.FieldByteLen()
	if len(b) == 0 {
		return nil, PointEncodingError{Reason: "empty encoding"}
	}
	switch b[0] {
	case tagCompressedEven, tagCompressedOdd:
		if len(b) != 1+size {
			return nil, PointEncodingError{Reason: "bad compressed length"}
		}
		x := new(big.Int).SetBytes(b[1:])
		if x.Cmp(d.P) >= 0 {
			return nil, PointEncodingError{Reason: "x out of range"}
		}
		// y^2 = x^3 + ax + b
		y2 := new(big.Int).Mul(x, x)
		y2.Mul(y2, x)
		y2.Add(y2, new(big.Int).Mul(d.A, x))
		y2.Add(y2, d.B)
		y2.Mod(y2, d.P)
		y := new(big.Int).ModSqrt(y2, d.P)
		if y == nil {
			return nil, PointEncodingError{Reason: "not a quadratic residue"}
		}
		if y.Bit(0) != uint(b[0]&1) {
			y.Sub(d.P, y)
		}
		return d.NewPoint(x, y), nil
	case tagUncompressed:
		if len(b) != 1+2*size {
			return nil, PointEncodingError{Reason: "bad uncompressed length"}
		}
		x := new(big.Int).SetBytes(b[1 : 1+size])
		y := new(big.Int).SetBytes(b[1+size:])
		if !d.isOnCurve(x, y) {
			return nil, PointEncodingError{Reason: "point not on curve"}
		}
		return d.NewPoint(x, y), nil
	}
	return nil, PointEncodingError{Reason: "unknown point tag"}
}
