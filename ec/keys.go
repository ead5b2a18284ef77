package ec

import (
	"io"
	"math/big"
)

// Key is a tagged curve key: a public point or a private scalar bound to a
// named domain.
type Key struct {
	Curve  string
	Public bool
	D      *big.Int // private scalar in [1, N-1]; nil for public keys
	X, Y   *big.Int // affine public point
}

// GenerateKey draws a private scalar d uniformly in [2, N-1], rejecting
// low-NAF-weight scalars (weight below bitlen/4) to resist low-weight
// exponent attacks, and computes Q = d*G with the fixed-base comb.
func GenerateKey(d *Domain, rand io.Reader) (*Key, error) {
	minWeight := d.N.BitLen() / 4
	buf := make([]byte, d.ScalarByteLen())
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, EntropyError{Err: err}
		}
		k := new(big.Int).SetBytes(buf)
		k.Mod(k, d.N)
		if k.Cmp(big.NewInt(2)) < 0 {
			continue
		}
		if nafWeight(k) < minWeight {
			continue
		}
		q := d.MultiplyGenerator(k)
		x, y, err := q.Normalize()
		if err != nil {
			continue
		}
		return &Key{Curve: d.Name, D: k, X: x, Y: y}, nil
	}
}

// PublicKey returns the public half of k.
func (k *Key) PublicKey() *Key {
	return &Key{Curve: k.Curve, Public: true, X: new(big.Int).Set(k.X), Y: new(big.Int).Set(k.Y)}
}

// Point returns the public point of k on its domain.
func (k *Key) Point() (*Point, error) {
	d, err := DomainByName(k.Curve)
	if err != nil {
		return nil, err
	}
	return d.NewPoint(k.X, k.Y), nil
}

// Encode serializes the key: SEC1 point bytes for public keys, unsigned
// big-endian scalar bytes for private keys.
func (k *Key) Encode(compressed bool) ([]byte, error) {
	d, err := DomainByName(k.Curve)
	if err != nil {
		return nil, err
	}
	if k.Public || k.D == nil {
		return d.NewPoint(k.X, k.Y).EncodePoint(compressed)
	}
	return padBytes(k.D, d.ScalarByteLen()), nil
}

// ValidatePublic checks that q is a valid public point on d: finite, with
// affine coordinates in range, on the curve, surviving cofactor clearing,
// and of order N.
func (d *Domain) ValidatePublic(q *Point) error {
	if q.IsInfinity() {
		return InvalidPointError{Reason: "point at infinity"}
	}
	x, y, err := q.Normalize()
	if err != nil {
		return InvalidPointError{Reason: "no affine form"}
	}
	if x.Sign() < 0 || x.Cmp(d.P) >= 0 || y.Sign() < 0 || y.Cmp(d.P) >= 0 {
		return InvalidPointError{Reason: "coordinate out of range"}
	}
	if !d.isOnCurve(x, y) {
		return InvalidPointError{Reason: "point not on curve"}
	}
	if d.H.Cmp(big.NewInt(1)) > 0 {
		if q.Multiply(d.H).IsInfinity() {
			return InvalidPointError{Reason: "point in small subgroup"}
		}
	}
	if !q.Multiply(d.N).IsInfinity() {
		return InvalidPointError{Reason: "point order is not N"}
	}
	return nil
}
