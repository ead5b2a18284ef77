package ec

import (
	"math/big"
)

// wnafDigits returns the width-w non-adjacent form of k, least significant
// digit first. Every nonzero digit is odd and |digit| < 2^(w-1).
func wnafDigits(k *big.Int, width uint) []int8 {
	var digits []int8
	d := new(big.Int).Set(k)
	mod := int64(1) << width
	half := mod >> 1
	for d.Sign() > 0 {
		var digit int64
		if d.Bit(0) == 1 {
			r := new(big.Int).And(d, big.NewInt(mod-1)).Int64()
			if r >= half {
				r -= mod
			}
			digit = r
			d.Sub(d, big.NewInt(r))
		}
		digits = append(digits, int8(digit))
		d.Rsh(d, 1)
	}
	return digits
}

// nafWeight returns the Hamming weight of the non-adjacent form of k.
func nafWeight(k *big.Int) int {
	w := 0
	for _, d := range wnafDigits(k, 2) {
		if d != 0 {
			w++
		}
	}
	return w
}

// Multiply computes k*p by width-5 wNAF with precomputed odd multiples.
func (p *Point) Multiply(k *big.Int) *Point {
	d := p.domain
	kk := new(big.Int).Mod(k, d.N)
	if kk.Sign() == 0 || p.IsInfinity() {
		return d.Infinity()
	}

	// Odd multiples p, 3p, ..., 15p.
	var table [8]*Point
	table[0] = p
	twoP := p.Double()
	for i := 1; i < 8; i++ {
		table[i] = table[i-1].Add(twoP)
	}

	digits := wnafDigits(kk, 5)
	r := d.Infinity()
	for i := len(digits) - 1; i >= 0; i-- {
		r = r.Double()
		if digit := digits[i]; digit > 0 {
			r = r.Add(table[digit>>1])
		} else if digit < 0 {
			r = r.Add(table[(-digit)>>1].Negate())
		}
	}
	return r
}

const combWidth = 4

// combInit builds the fixed-base comb table for the generator: entry j is
// the sum of 2^(t*spacing)*G over the set bits t of j.
func (d *Domain) combInit() {
	d.combSpacing = (d.N.BitLen() + combWidth - 1) / combWidth

	// Powers 2^(t*spacing)*G for each tooth.
	teeth := make([]*Point, combWidth)
	teeth[0] = d.Generator()
	for t := 1; t < combWidth; t++ {
		q := teeth[t-1]
		for i := 0; i < d.combSpacing; i++ {
			q = q.Double()
		}
		teeth[t] = q
	}

	d.combTable = make([]*Point, 1<<combWidth)
	d.combTable[0] = d.Infinity()
	for j := 1; j < 1<<combWidth; j++ {
		low := j & (j - 1)
		bit := j ^ low
		t := 0
		for bit>>uint(t) != 1 {
			t++
		}
		d.combTable[j] = d.combTable[low].Add(teeth[t])
	}
}

// MultiplyGenerator computes k*G with the fixed-base comb.
func (d *Domain) MultiplyGenerator(k *big.Int) *Point {
	d.combOnce.Do(d.combInit)
	kk := new(big.Int).Mod(k, d.N)

	r := d.Infinity()
	for i := d.combSpacing - 1; i >= 0; i-- {
		r = r.Double()
		j := 0
		for t := 0; t < combWidth; t++ {
			if kk.Bit(i+t*d.combSpacing) == 1 {
				j |= 1 << uint(t)
			}
		}
		if j != 0 {
			r = r.Add(d.combTable[j])
		}
	}
	return r
}
