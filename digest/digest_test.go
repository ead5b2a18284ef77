package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Run("known digests", func(t *testing.T) {
		for _, h := range []Hash{SHA256, SHA384, SHA512, BLAKE2b256, BLAKE2b512, SM3} {
			d, err := h.New()
			assert.NoError(t, err)
			assert.Equal(t, h.Size(), d.Size())
		}
	})

	t.Run("unknown digest", func(t *testing.T) {
		_, err := Hash("MD5").New()
		assert.Error(t, err)
		assert.IsType(t, UnknownDigestError(""), err)
		assert.Equal(t, 0, Hash("MD5").Size())
	})

	t.Run("constructor func", func(t *testing.T) {
		d := SHA256.NewFunc()()
		assert.Equal(t, 32, d.Size())
	})
}

func TestAbsorbPrefixed(t *testing.T) {
	t.Run("framing separates boundaries", func(t *testing.T) {
		a, _ := SHA256.New()
		AbsorbPrefixed(a, []byte("ab"), []byte("c"))
		b, _ := SHA256.New()
		AbsorbPrefixed(b, []byte("a"), []byte("bc"))
		assert.NotEqual(t, a.Sum(nil), b.Sum(nil))
	})

	t.Run("prefix is little-endian length", func(t *testing.T) {
		a, _ := SHA256.New()
		AbsorbPrefixed(a, []byte{0xAA})
		b, _ := SHA256.New()
		b.Write([]byte{1, 0, 0, 0, 0xAA})
		assert.Equal(t, b.Sum(nil), a.Sum(nil))
	})
}
