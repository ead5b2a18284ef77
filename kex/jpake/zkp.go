package jpake

import (
	"io"
	"math/big"

	"github.com/dromara/veil/digest"
	"github.com/dromara/veil/ec"
	"github.com/dromara/veil/util"
)

// proof is a Schnorr proof of knowledge of the discrete log x of X = g*x.
type proof struct {
	V *ec.Point
	R *big.Int
}

// randomScalar draws a scalar uniformly in [1, n-1].
func randomScalar(d *ec.Domain, rand io.Reader) (*big.Int, error) {
	buf := make([]byte, d.ScalarByteLen())
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, EntropyError{Err: err}
		}
		k := new(big.Int).SetBytes(buf)
		k.Mod(k, d.N)
		if k.Sign() != 0 {
			util.WipeBytes(buf)
			return k, nil
		}
	}
}

// challenge computes h = H(g || V || X || id) with every input preceded by
// its 4-byte little-endian length, reduced modulo the group order.
func challenge(d *ec.Domain, dig digest.Hash, gen, v, x *ec.Point, id string) (*big.Int, error) {
	genB, err := gen.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	vB, err := v.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	xB, err := x.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	h, err := dig.New()
	if err != nil {
		return nil, err
	}
	digest.AbsorbPrefixed(h, genB, vB, xB, util.String2Bytes(id))
	e := new(big.Int).SetBytes(h.Sum(nil))
	return e.Mod(e, d.N), nil
}

// newProof proves knowledge of x for X = gen*x: choose v uniformly, commit
// V = gen*v, respond r = v - x*h mod n.
func newProof(d *ec.Domain, dig digest.Hash, gen *ec.Point, x *big.Int, bigX *ec.Point, id string, rand io.Reader) (*proof, error) {
	v, err := randomScalar(d, rand)
	if err != nil {
		return nil, err
	}
	bigV := gen.Multiply(v)
	h, err := challenge(d, dig, gen, bigV, bigX, id)
	if err != nil {
		return nil, err
	}
	r := new(big.Int).Mul(x, h)
	r.Sub(v, r)
	r.Mod(r, d.N)
	v.SetInt64(0)
	return &proof{V: bigV, R: r}, nil
}

// verifyProof checks a proof against the public element: X must be a valid
// group element of full order, and gen*r + X*h must reproduce V. Any
// failure reports ZKPInvalidError.
func verifyProof(d *ec.Domain, dig digest.Hash, gen, bigX *ec.Point, p *proof, id string) error {
	if err := d.ValidatePublic(bigX); err != nil {
		return ZKPInvalidError{Reason: err.Error()}
	}
	h, err := challenge(d, dig, gen, p.V, bigX, id)
	if err != nil {
		return ZKPInvalidError{Reason: err.Error()}
	}
	lhs := gen.Multiply(p.R).Add(bigX.Multiply(h))
	if !lhs.Equal(p.V) {
		return ZKPInvalidError{Reason: "commitment mismatch"}
	}
	return nil
}
