package digest

import (
	"hash"

	"github.com/dromara/veil/util"
)

// AbsorbPrefixed writes each input to d preceded by its 4-byte little-endian
// unsigned length. Transcript hashes use this framing so that no two input
// sequences with different boundaries collide.
func AbsorbPrefixed(d hash.Hash, inputs ...[]byte) {
	var prefix [4]byte
	for _, in := range inputs {
		util.PackUint32LE(prefix[:], uint32(len(in)))
		d.Write(prefix[:])
		d.Write(in)
	}
}
