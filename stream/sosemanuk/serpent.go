package sosemanuk

// Serpent24 primitives used by the SOSEMANUK key schedule and IV injection.
// The S-boxes are the published Serpent substitution tables applied across
// the bits of four registers; the key schedule is the Serpent recurrence
// truncated to the 25 subkeys Serpent24 needs.

const phi = 0x9e3779b9 // The Serpent phi constant (sqrt(5) - 1) * 2**31

var sboxTable = [8][16]uint32{
	{3, 8, 15, 1, 10, 6, 5, 11, 14, 13, 4, 2, 7, 0, 9, 12},
	{15, 12, 2, 7, 9, 0, 5, 10, 1, 11, 14, 8, 6, 13, 3, 4},
	{8, 6, 7, 9, 3, 12, 10, 15, 13, 1, 14, 4, 0, 11, 5, 2},
	{0, 15, 11, 8, 12, 9, 6, 3, 13, 1, 2, 4, 10, 7, 5, 14},
	{1, 15, 8, 3, 12, 0, 11, 6, 2, 5, 4, 10, 9, 14, 7, 13},
	{15, 5, 2, 11, 4, 10, 9, 12, 0, 3, 14, 8, 13, 6, 7, 1},
	{7, 2, 12, 5, 8, 4, 6, 11, 14, 9, 1, 15, 13, 3, 10, 0},
	{1, 13, 15, 0, 14, 8, 2, 11, 7, 4, 12, 10, 9, 3, 5, 6},
}

// applySbox substitutes the 4-bit column (r3 r2 r1 r0) at every bit
// position through Serpent S-box s.
func applySbox(s int, r0, r1, r2, r3 *uint32) {
	box := &sboxTable[s]
	var o0, o1, o2, o3 uint32
	for b := uint(0); b < 32; b++ {
		n := *r0 >> b & 1
		n |= *r1 >> b & 1 << 1
		n |= *r2 >> b & 1 << 2
		n |= *r3 >> b & 1 << 3
		m := box[n]
		o0 |= (m & 1) << b
		o1 |= (m >> 1 & 1) << b
		o2 |= (m >> 2 & 1) << b
		o3 |= (m >> 3 & 1) << b
	}
	*r0, *r1, *r2, *r3 = o0, o1, o2, o3
}

// linear is the Serpent linear transformation.
func linear(v0, v1, v2, v3 *uint32) {
	t0 := *v0<<13 | *v0>>19
	t2 := *v2<<3 | *v2>>29
	t1 := *v1 ^ t0 ^ t2
	t3 := *v3 ^ t2 ^ t0<<3
	*v1 = t1<<1 | t1>>31
	*v3 = t3<<7 | t3>>25
	t0 = t0 ^ *v1 ^ *v3
	t2 = t2 ^ *v3 ^ *v1<<7
	*v0 = t0<<5 | t0>>27
	*v2 = t2<<22 | t2>>10
}

// keySchedule24 expands a padded 32-byte key into the 100 Serpent24 subkey
// words. Subkey group g passes through S-box (3 - g) mod 8, as in the full
// Serpent schedule.
func keySchedule24(key *[32]byte, sk *[100]uint32) {
	var k [16]uint32
	for i := 0; i < 8; i++ {
		k[i] = uint32(key[i*4]) | uint32(key[i*4+1])<<8 | uint32(key[i*4+2])<<16 | uint32(key[i*4+3])<<24
	}
	for i := 8; i < 16; i++ {
		x := k[i-8] ^ k[i-5] ^ k[i-3] ^ k[i-1] ^ phi ^ uint32(i-8)
		k[i] = x<<11 | x>>21
		sk[i-8] = k[i]
	}
	for i := 8; i < 100; i++ {
		x := sk[i-8] ^ sk[i-5] ^ sk[i-3] ^ sk[i-1] ^ phi ^ uint32(i)
		sk[i] = x<<11 | x>>21
	}
	for g := 0; g < 25; g++ {
		s := ((3 - g) % 8 + 8) % 8
		applySbox(s, &sk[4*g], &sk[4*g+1], &sk[4*g+2], &sk[4*g+3])
	}
}

// serpent24 encrypts the IV block under the expanded subkeys, capturing the
// register state after rounds 12, 18 and 24. Round r uses S-box r mod 8;
// the last round swaps the linear transform for the final subkey XOR.
func serpent24(sk *[100]uint32, iv *[4]uint32) (out12, out18, out24 [4]uint32) {
	r0, r1, r2, r3 := iv[0], iv[1], iv[2], iv[3]
	for rnd := 0; rnd < 24; rnd++ {
		r0 ^= sk[4*rnd]
		r1 ^= sk[4*rnd+1]
		r2 ^= sk[4*rnd+2]
		r3 ^= sk[4*rnd+3]
		applySbox(rnd%8, &r0, &r1, &r2, &r3)
		if rnd == 23 {
			r0 ^= sk[96]
			r1 ^= sk[97]
			r2 ^= sk[98]
			r3 ^= sk[99]
		} else {
			linear(&r0, &r1, &r2, &r3)
		}
		switch rnd {
		case 11:
			out12 = [4]uint32{r0, r1, r2, r3}
		case 17:
			out18 = [4]uint32{r0, r1, r2, r3}
		}
	}
	out24 = [4]uint32{r0, r1, r2, r3}
	return
}
