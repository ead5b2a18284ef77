package hc256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPadding(t *testing.T) {
	t.Run("16-byte key equals repeated 32-byte key", func(t *testing.T) {
		short := make([]byte, 16)
		for i := range short {
			short[i] = byte(i * 3)
		}
		long := append(append([]byte{}, short...), short...)
		nonce := make([]byte, 32)

		a := New()
		require.NoError(t, a.Init(true, short, nonce))
		b := New()
		require.NoError(t, b.Init(true, long, nonce))

		ka := make([]byte, 256)
		kb := make([]byte, 256)
		require.NoError(t, a.GetKeystream(ka, 0, 256))
		require.NoError(t, b.GetKeystream(kb, 0, 256))
		assert.Equal(t, ka, kb)
	})

	t.Run("short nonce equals zero-padded nonce", func(t *testing.T) {
		key := make([]byte, 32)
		short := make([]byte, 16)
		short[0] = 0x42
		padded := make([]byte, 32)
		padded[0] = 0x42

		a := New()
		require.NoError(t, a.Init(true, key, short))
		b := New()
		require.NoError(t, b.Init(true, key, padded))

		ka := make([]byte, 64)
		kb := make([]byte, 64)
		require.NoError(t, a.GetKeystream(ka, 0, 64))
		require.NoError(t, b.GetKeystream(kb, 0, 64))
		assert.Equal(t, ka, kb)
	})
}

func TestInitValidation(t *testing.T) {
	t.Run("bad key sizes", func(t *testing.T) {
		for _, n := range []int{0, 8, 15, 17, 31, 33} {
			err := New().Init(true, make([]byte, n), make([]byte, 16))
			assert.IsType(t, KeySizeError(0), err, "key size %d", n)
		}
	})

	t.Run("bad nonce sizes", func(t *testing.T) {
		for _, n := range []int{0, 8, 15, 33} {
			err := New().Init(true, make([]byte, 32), make([]byte, n))
			assert.IsType(t, NonceSizeError(0), err, "nonce size %d", n)
		}
	})
}
