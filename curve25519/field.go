package curve25519

// Field arithmetic over 2^255-19 in the ten-limb int32 representation
// (radix 2^25.5, alternating 26- and 25-bit limbs). All operations run in
// constant time: fixed-count loops, no secret-dependent branches or
// indices.

type fieldElement [10]int32

func feZero(fe *fieldElement) {
	for i := range fe {
		fe[i] = 0
	}
}

func feOne(fe *fieldElement) {
	feZero(fe)
	fe[0] = 1
}

func feCopy(dst, src *fieldElement) {
	*dst = *src
}

func feAdd(dst, a, b *fieldElement) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func feSub(dst, a, b *fieldElement) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func feNeg(dst, a *fieldElement) {
	for i := range dst {
		dst[i] = -a[i]
	}
}

// feCSwap swaps f and g when b is 1, leaves them untouched when b is 0,
// without branching on b.
func feCSwap(f, g *fieldElement, b int32) {
	mask := -b
	for i := range f {
		t := mask & (f[i] ^ g[i])
		f[i] ^= t
		g[i] ^= t
	}
}

func load3(in []byte) int64 {
	return int64(in[0]) | int64(in[1])<<8 | int64(in[2])<<16
}

func load4(in []byte) int64 {
	return int64(in[0]) | int64(in[1])<<8 | int64(in[2])<<16 | int64(in[3])<<24
}

func feFromBytes(dst *fieldElement, src *[32]byte) {
	h0 := load4(src[0:])
	h1 := load3(src[4:]) << 6
	h2 := load3(src[7:]) << 5
	h3 := load3(src[10:]) << 3
	h4 := load3(src[13:]) << 2
	h5 := load4(src[16:])
	h6 := load3(src[20:]) << 7
	h7 := load3(src[23:]) << 5
	h8 := load3(src[26:]) << 4
	h9 := (load3(src[29:]) & 0x7FFFFF) << 2

	var t [10]int64
	t[0], t[1], t[2], t[3], t[4] = h0, h1, h2, h3, h4
	t[5], t[6], t[7], t[8], t[9] = h5, h6, h7, h8, h9
	feReduce(dst, &t)
}

// feReduce carries the 64-bit accumulator limbs into canonical range and
// writes the result. Two fixed passes bound every limb regardless of input
// magnitude from feMul.
func feReduce(dst *fieldElement, t *[10]int64) {
	for pass := 0; pass < 2; pass++ {
		for k := 0; k < 10; k++ {
			shift := uint(26 - k&1)
			c := (t[k] + (1 << (shift - 1))) >> shift
			t[k] -= c << shift
			if k == 9 {
				t[0] += 19 * c
			} else {
				t[k+1] += c
			}
		}
	}
	for i := range dst {
		dst[i] = int32(t[i])
	}
}

// feToBytes packs fe into its unique 32-byte little-endian representation,
// fully reducing modulo 2^255-19.
func feToBytes(s *[32]byte, fe *fieldElement) {
	var h fieldElement
	feCopy(&h, fe)

	q := (19*int64(h[9]) + (1 << 24)) >> 25
	q = (int64(h[0]) + q) >> 26
	q = (int64(h[1]) + q) >> 25
	q = (int64(h[2]) + q) >> 26
	q = (int64(h[3]) + q) >> 25
	q = (int64(h[4]) + q) >> 26
	q = (int64(h[5]) + q) >> 25
	q = (int64(h[6]) + q) >> 26
	q = (int64(h[7]) + q) >> 25
	q = (int64(h[8]) + q) >> 26
	q = (int64(h[9]) + q) >> 25

	var t [10]int64
	for i := range h {
		t[i] = int64(h[i])
	}
	t[0] += 19 * q
	var c int64
	for k := 0; k < 10; k++ {
		shift := uint(26 - k&1)
		c = t[k] >> shift
		t[k] -= c << shift
		if k < 9 {
			t[k+1] += c
		}
	}
	// The final carry out of t[9] is q and has already been folded in.

	h0, h1, h2, h3, h4 := uint32(t[0]), uint32(t[1]), uint32(t[2]), uint32(t[3]), uint32(t[4])
	h5, h6, h7, h8, h9 := uint32(t[5]), uint32(t[6]), uint32(t[7]), uint32(t[8]), uint32(t[9])

	s[0] = byte(h0)
	s[1] = byte(h0 >> 8)
	s[2] = byte(h0 >> 16)
	s[3] = byte(h0>>24 | h1<<2)
	s[4] = byte(h1 >> 6)
	s[5] = byte(h1 >> 14)
	s[6] = byte(h1>>22 | h2<<3)
	s[7] = byte(h2 >> 5)
	s[8] = byte(h2 >> 13)
	s[9] = byte(h2>>21 | h3<<5)
	s[10] = byte(h3 >> 3)
	s[11] = byte(h3 >> 11)
	s[12] = byte(h3>>19 | h4<<6)
	s[13] = byte(h4 >> 2)
	s[14] = byte(h4 >> 10)
	s[15] = byte(h4 >> 18)
	s[16] = byte(h5)
	s[17] = byte(h5 >> 8)
	s[18] = byte(h5 >> 16)
	s[19] = byte(h5>>24 | h6<<1)
	s[20] = byte(h6 >> 7)
	s[21] = byte(h6 >> 15)
	s[22] = byte(h6>>23 | h7<<3)
	s[23] = byte(h7 >> 5)
	s[24] = byte(h7 >> 13)
	s[25] = byte(h7>>21 | h8<<4)
	s[26] = byte(h8 >> 4)
	s[27] = byte(h8 >> 12)
	s[28] = byte(h8>>20 | h9<<6)
	s[29] = byte(h9 >> 2)
	s[30] = byte(h9 >> 10)
	s[31] = byte(h9 >> 18)
}

// feMul sets dst = a*b. Limb i carries weight 2^ceil(25.5i); cross terms
// where both indices are odd pick up a factor of two, and terms past limb
// nine fold back through 2^255 = 19.
func feMul(dst, a, b *fieldElement) {
	var t [19]int64
	for i := 0; i < 10; i++ {
		ai := int64(a[i])
		for j := 0; j < 10; j++ {
			m := ai * int64(b[j])
			if i&j&1 == 1 {
				m *= 2
			}
			t[i+j] += m
		}
	}
	var r [10]int64
	for k := 0; k < 10; k++ {
		r[k] = t[k]
	}
	for k := 10; k < 19; k++ {
		r[k-10] += 19 * t[k]
	}
	feReduce(dst, &r)
}

// feSquare sets dst = a*a.
func feSquare(dst, a *fieldElement) {
	feMul(dst, a, a)
}

// feSquareN sets dst = a^(2^n).
func feSquareN(dst, a *fieldElement, n int) {
	feSquare(dst, a)
	for i := 1; i < n; i++ {
		feSquare(dst, dst)
	}
}

// feMul121666 sets dst = a * 121666, the (A+2)/4 constant of the ladder.
func feMul121666(dst, a *fieldElement) {
	var t [10]int64
	for i := range a {
		t[i] = int64(a[i]) * 121666
	}
	feReduce(dst, &t)
}

// feInvert sets dst = a^-1 via Fermat: a^(2^255-21).
func feInvert(dst, a *fieldElement) {
	var t0, t1, t2, t3 fieldElement

	feSquare(&t0, a)          // 2
	feSquareN(&t1, &t0, 2)    // 8
	feMul(&t1, a, &t1)        // 9
	feMul(&t0, &t0, &t1)      // 11
	feSquare(&t2, &t0)        // 22
	feMul(&t1, &t1, &t2)      // 31 = 2^5-1
	feSquareN(&t2, &t1, 5)    // 2^10-2^5
	feMul(&t1, &t2, &t1)      // 2^10-1
	feSquareN(&t2, &t1, 10)   // 2^20-2^10
	feMul(&t2, &t2, &t1)      // 2^20-1
	feSquareN(&t3, &t2, 20)   // 2^40-2^20
	feMul(&t2, &t3, &t2)      // 2^40-1
	feSquareN(&t2, &t2, 10)   // 2^50-2^10
	feMul(&t1, &t2, &t1)      // 2^50-1
	feSquareN(&t2, &t1, 50)   // 2^100-2^50
	feMul(&t2, &t2, &t1)      // 2^100-1
	feSquareN(&t3, &t2, 100)  // 2^200-2^100
	feMul(&t2, &t3, &t2)      // 2^200-1
	feSquareN(&t2, &t2, 50)   // 2^250-2^50
	feMul(&t1, &t2, &t1)      // 2^250-1
	feSquareN(&t1, &t1, 5)    // 2^255-2^5
	feMul(dst, &t1, &t0)      // 2^255-21
}
