package util

import (
	"crypto/subtle"
	"runtime"
)

// ConstantTimeEquals reports whether a and b are equal byte strings without
// short-circuiting on the first differing byte. Two slices of different
// length compare unequal in time dependent only on the shorter length.
func ConstantTimeEquals(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// WipeBytes overwrites b with zeros. The runtime.KeepAlive call acts as a
// compiler barrier so the stores cannot be elided as dead writes.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// WipeUint32 overwrites w with zeros, with the same barrier as WipeBytes.
func WipeUint32(w []uint32) {
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
}
