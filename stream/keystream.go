package stream

import (
	"github.com/dromara/veil/util"
)

// Keystream carries a partial block of generated keystream between process
// calls. Every engine embeds one sized to its stride; the three-phase drain
// (leftover bytes, whole blocks, buffered tail) guarantees that splitting a
// byte count across calls cannot change the output.
type Keystream struct {
	block []byte // one stride of generated keystream
	used  int    // bytes of block already consumed
}

// NewKeystream returns an empty keystream carrier for the given stride.
func NewKeystream(stride int) Keystream {
	return Keystream{block: make([]byte, stride), used: stride}
}

// Rewind discards any buffered keystream, for use from an engine's Reset.
func (k *Keystream) Rewind() {
	k.used = len(k.block)
}

// XOR combines n bytes of src into dst with keystream, calling step to
// generate each whole stride into the internal block.
func (k *Keystream) XOR(dst, src []byte, n int, step func(block []byte)) {
	i := 0
	// Phase 1: drain leftover bytes of the previous block.
	for ; i < n && k.used < len(k.block); i++ {
		dst[i] = src[i] ^ k.block[k.used]
		k.used++
	}
	// Phase 2: whole-block steps.
	stride := len(k.block)
	for ; n-i >= stride; i += stride {
		step(k.block)
		util.XORBytes(dst[i:], src[i:], k.block, stride)
	}
	// Phase 3: buffer the final partial block.
	if i < n {
		step(k.block)
		k.used = n - i
		util.XORBytes(dst[i:], src[i:], k.block, k.used)
	}
}

// Raw writes n bytes of raw keystream into dst, advancing exactly as XOR
// would.
func (k *Keystream) Raw(dst []byte, n int, step func(block []byte)) {
	i := 0
	for ; i < n && k.used < len(k.block); i++ {
		dst[i] = k.block[k.used]
		k.used++
	}
	stride := len(k.block)
	for ; n-i >= stride; i += stride {
		step(k.block)
		copy(dst[i:], k.block)
	}
	if i < n {
		step(k.block)
		k.used = n - i
		copy(dst[i:], k.block[:k.used])
	}
}

// Next returns a single keystream byte.
func (k *Keystream) Next(step func(block []byte)) byte {
	if k.used == len(k.block) {
		step(k.block)
		k.used = 0
	}
	b := k.block[k.used]
	k.used++
	return b
}

// Wipe zeroizes the buffered keystream and marks it consumed.
func (k *Keystream) Wipe() {
	util.WipeBytes(k.block)
	k.used = len(k.block)
}
