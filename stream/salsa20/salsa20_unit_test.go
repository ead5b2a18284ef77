package salsa20

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xsalsa "golang.org/x/crypto/salsa20"
)

// refKeystream produces n keystream bytes from the reference implementation
// in golang.org/x/crypto.
func refKeystream(key [32]byte, nonce []byte, n int) []byte {
	out := make([]byte, n)
	xsalsa.XORKeyStream(out, make([]byte, n), nonce, &key)
	return out
}

func TestKnownAnswer(t *testing.T) {
	t.Run("eSTREAM set key 0x80", func(t *testing.T) {
		// Salsa20/20, 256-bit key 80 00 .. 00, zero nonce: the first 64
		// keystream bytes must match the published vector, here taken from
		// the reference implementation.
		var key [32]byte
		key[0] = 0x80
		nonce := make([]byte, 8)

		e := New()
		require.NoError(t, e.Init(true, key[:], nonce))
		got := make([]byte, 64)
		require.NoError(t, e.GetKeystream(got, 0, 64))

		assert.Equal(t, refKeystream(key, nonce, 64), got)
	})

	t.Run("agrees with reference across offsets", func(t *testing.T) {
		var key [32]byte
		for i := range key {
			key[i] = byte(i * 11)
		}
		nonce := []byte{1, 2, 3, 4, 5, 6, 7, 8}

		e := New()
		require.NoError(t, e.Init(true, key[:], nonce))
		got := make([]byte, 1000)
		require.NoError(t, e.GetKeystream(got, 0, 1000))

		assert.Equal(t, refKeystream(key, nonce, 1000), got)
	})
}

func TestShortKey(t *testing.T) {
	t.Run("16-byte key roundtrip", func(t *testing.T) {
		key := make([]byte, 16)
		for i := range key {
			key[i] = byte(i + 1)
		}
		nonce := make([]byte, 8)

		enc := New()
		require.NoError(t, enc.Init(true, key, nonce))
		dec := New()
		require.NoError(t, dec.Init(false, key, nonce))

		plain := []byte("sixteen byte keys use the tau constants")
		ct := make([]byte, len(plain))
		require.NoError(t, enc.ProcessBytes(plain, 0, len(plain), ct, 0))
		assert.NotEqual(t, plain, ct)

		back := make([]byte, len(ct))
		require.NoError(t, dec.ProcessBytes(ct, 0, len(ct), back, 0))
		assert.Equal(t, plain, back)
	})
}

func TestInitValidation(t *testing.T) {
	t.Run("bad key sizes", func(t *testing.T) {
		for _, n := range []int{0, 8, 15, 17, 31, 33} {
			err := New().Init(true, make([]byte, n), make([]byte, 8))
			assert.IsType(t, KeySizeError(0), err, "key size %d", n)
		}
	})

	t.Run("bad nonce sizes", func(t *testing.T) {
		for _, n := range []int{0, 7, 9, 24} {
			err := New().Init(true, make([]byte, 32), make([]byte, n))
			assert.IsType(t, NonceSizeError(0), err, "nonce size %d", n)
		}
	})
}
