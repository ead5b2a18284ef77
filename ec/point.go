package ec

import (
	"math/big"
)

// Point is a curve point in Jacobian coordinates (X/Z^2, Y/Z^3). The point
// at infinity is represented by Z = 0. Points are immutable once built;
// operations return fresh points.
type Point struct {
	X, Y, Z *big.Int
	domain  *Domain
}

// Infinity returns the point at infinity on d.
func (d *Domain) Infinity() *Point {
	return &Point{X: big.NewInt(1), Y: big.NewInt(1), Z: new(big.Int), domain: d}
}

// Generator returns the domain generator as an affine Jacobian point.
func (d *Domain) Generator() *Point {
	return d.NewPoint(d.Gx, d.Gy)
}

// NewPoint builds a point from affine coordinates without validation.
func (d *Domain) NewPoint(x, y *big.Int) *Point {
	return &Point{
		X:      new(big.Int).Set(x),
		Y:      new(big.Int).Set(y),
		Z:      big.NewInt(1),
		domain: d,
	}
}

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p.Z.Sign() == 0
}

// Negate returns -p.
func (p *Point) Negate() *Point {
	if p.IsInfinity() {
		return p.domain.Infinity()
	}
	y := new(big.Int).Sub(p.domain.P, new(big.Int).Mod(p.Y, p.domain.P))
	y.Mod(y, p.domain.P)
	return &Point{X: new(big.Int).Set(p.X), Y: y, Z: new(big.Int).Set(p.Z), domain: p.domain}
}

// Double returns 2p using the general-a Jacobian doubling formulas.
func (p *Point) Double() *Point {
	if p.IsInfinity() || p.Y.Sign() == 0 {
		return p.domain.Infinity()
	}
	mod := p.domain.P

	a := new(big.Int).Mul(p.X, p.X) // A = X1^2
	a.Mod(a, mod)
	b := new(big.Int).Mul(p.Y, p.Y) // B = Y1^2
	b.Mod(b, mod)
	c := new(big.Int).Mul(b, b) // C = B^2
	c.Mod(c, mod)

	// D = 2*((X1+B)^2 - A - C)
	d := new(big.Int).Add(p.X, b)
	d.Mul(d, d)
	d.Sub(d, a)
	d.Sub(d, c)
	d.Lsh(d, 1)
	d.Mod(d, mod)

	// E = 3A + a*Z1^4
	z2 := new(big.Int).Mul(p.Z, p.Z)
	z2.Mod(z2, mod)
	z4 := new(big.Int).Mul(z2, z2)
	z4.Mod(z4, mod)
	e := new(big.Int).Lsh(a, 1)
	e.Add(e, a)
	e.Add(e, z4.Mul(z4, p.domain.A))
	e.Mod(e, mod)

	// X3 = E^2 - 2D
	x3 := new(big.Int).Mul(e, e)
	x3.Sub(x3, new(big.Int).Lsh(d, 1))
	x3.Mod(x3, mod)

	// Y3 = E*(D - X3) - 8C
	y3 := new(big.Int).Sub(d, x3)
	y3.Mul(y3, e)
	y3.Sub(y3, new(big.Int).Lsh(c, 3))
	y3.Mod(y3, mod)

	// Z3 = 2*Y1*Z1
	z3 := new(big.Int).Mul(p.Y, p.Z)
	z3.Lsh(z3, 1)
	z3.Mod(z3, mod)

	return &Point{X: x3, Y: y3, Z: z3, domain: p.domain}
}

// Add returns p+q using the general Jacobian addition formulas.
func (p *Point) Add(q *Point) *Point {
	if p.IsInfinity() {
		return &Point{X: new(big.Int).Set(q.X), Y: new(big.Int).Set(q.Y), Z: new(big.Int).Set(q.Z), domain: q.domain}
	}
	if q.IsInfinity() {
		return &Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y), Z: new(big.Int).Set(p.Z), domain: p.domain}
	}
	mod := p.domain.P

	z1z1 := new(big.Int).Mul(p.Z, p.Z)
	z1z1.Mod(z1z1, mod)
	z2z2 := new(big.Int).Mul(q.Z, q.Z)
	z2z2.Mod(z2z2, mod)

	u1 := new(big.Int).Mul(p.X, z2z2)
	u1.Mod(u1, mod)
	u2 := new(big.Int).Mul(q.X, z1z1)
	u2.Mod(u2, mod)

	s1 := new(big.Int).Mul(p.Y, z2z2)
	s1.Mul(s1, q.Z)
	s1.Mod(s1, mod)
	s2 := new(big.Int).Mul(q.Y, z1z1)
	s2.Mul(s2, p.Z)
	s2.Mod(s2, mod)

	h := new(big.Int).Sub(u2, u1)
	h.Mod(h, mod)
	r := new(big.Int).Sub(s2, s1)
	r.Mod(r, mod)

	if h.Sign() == 0 {
		if r.Sign() == 0 {
			return p.Double()
		}
		return p.domain.Infinity()
	}

	hh := new(big.Int).Mul(h, h)
	hh.Mod(hh, mod)
	hhh := new(big.Int).Mul(hh, h)
	hhh.Mod(hhh, mod)
	v := new(big.Int).Mul(u1, hh)
	v.Mod(v, mod)

	// X3 = r^2 - H^3 - 2V
	x3 := new(big.Int).Mul(r, r)
	x3.Sub(x3, hhh)
	x3.Sub(x3, new(big.Int).Lsh(v, 1))
	x3.Mod(x3, mod)

	// Y3 = r*(V - X3) - S1*H^3
	y3 := new(big.Int).Sub(v, x3)
	y3.Mul(y3, r)
	y3.Sub(y3, new(big.Int).Mul(s1, hhh))
	y3.Mod(y3, mod)

	// Z3 = Z1*Z2*H
	z3 := new(big.Int).Mul(p.Z, q.Z)
	z3.Mul(z3, h)
	z3.Mod(z3, mod)

	return &Point{X: x3, Y: y3, Z: z3, domain: p.domain}
}

// Normalize returns the affine coordinates of p. The point at infinity
// has no affine form and returns an InfinityError.
func (p *Point) Normalize() (x, y *big.Int, err error) {
	if p.IsInfinity() {
		return nil, nil, InfinityError{}
	}
	mod := p.domain.P
	zInv := new(big.Int).ModInverse(p.Z, mod)
	zInv2 := new(big.Int).Mul(zInv, zInv)
	zInv2.Mod(zInv2, mod)

	x = new(big.Int).Mul(p.X, zInv2)
	x.Mod(x, mod)
	y = new(big.Int).Mul(p.Y, zInv2)
	y.Mul(y, zInv)
	y.Mod(y, mod)
	return x, y, nil
}

// IsOnCurve reports whether the affine form of p satisfies
// y^2 = x^3 + ax + b.
func (p *Point) IsOnCurve() bool {
	if p.IsInfinity() {
		return false
	}
	x, y, err := p.Normalize()
	if err != nil {
		return false
	}
	return p.domain.isOnCurve(x, y)
}

func (d *Domain) isOnCurve(x, y *big.Int) bool {
	if x.Sign() < 0 || x.Cmp(d.P) >= 0 || y.Sign() < 0 || y.Cmp(d.P) >= 0 {
		return false
	}
	// y^2
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, d.P)
	// x^3 + ax + b
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, new(big.Int).Mul(d.A, x))
	rhs.Add(rhs, d.B)
	rhs.Mod(rhs, d.P)
	return lhs.Cmp(rhs) == 0
}

// Equal reports whether p and q are the same projective point.
func (p *Point) Equal(q *Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	px, py, _ := p.Normalize()
	qx, qy, _ := q.Normalize()
	return px.Cmp(qx) == 0 && py.Cmp(qy) == 0
}
