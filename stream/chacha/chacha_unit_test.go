package chacha

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xchacha "golang.org/x/crypto/chacha20"
)

func TestKnownAnswer(t *testing.T) {
	t.Run("RFC 8439 vector 1", func(t *testing.T) {
		// All-zero key, all-zero nonce, counter 0: first keystream block.
		want, err := hex.DecodeString(
			"76b8e0ada0f13d90405d6ae55386bd28" +
				"bdd219b8a08ded1aa836efcc8b770dc7" +
				"da41597c5157488d7724e03fb8d84a37" +
				"6a43b8f41518a11cc387b669b2ee6586")
		require.NoError(t, err)

		e, err := New(20)
		require.NoError(t, err)
		require.NoError(t, e.Init(true, make([]byte, 32), make([]byte, 8)))
		got := make([]byte, 64)
		require.NoError(t, e.GetKeystream(got, 0, 64))
		assert.Equal(t, want, got)
	})

	t.Run("agrees with reference", func(t *testing.T) {
		key := make([]byte, 32)
		nonce := make([]byte, 8)
		for i := range key {
			key[i] = byte(i * 5)
		}
		for i := range nonce {
			nonce[i] = byte(i + 200)
		}

		e, err := New(20)
		require.NoError(t, err)
		require.NoError(t, e.Init(true, key, nonce))
		got := make([]byte, 777)
		require.NoError(t, e.GetKeystream(got, 0, 777))

		// The 64-bit-counter layout matches the 96-bit-nonce reference when
		// the reference nonce is four zero bytes (the high counter word)
		// followed by the 8-byte nonce in the last two words.
		ref, err := xchacha.NewUnauthenticatedCipher(key, append(make([]byte, 4), nonce...))
		require.NoError(t, err)
		want := make([]byte, 777)
		ref.XORKeyStream(want, make([]byte, 777))
		assert.Equal(t, want, got)
	})
}

func TestVariants(t *testing.T) {
	t.Run("names", func(t *testing.T) {
		for rounds, name := range map[int]string{8: "ChaCha8", 12: "ChaCha12", 20: "ChaCha20"} {
			e, err := New(rounds)
			require.NoError(t, err)
			assert.Equal(t, name, e.AlgorithmName())
		}
	})

	t.Run("variants disagree", func(t *testing.T) {
		key := make([]byte, 32)
		nonce := make([]byte, 8)
		outputs := map[string]bool{}
		for _, rounds := range []int{8, 12, 20} {
			e, err := New(rounds)
			require.NoError(t, err)
			require.NoError(t, e.Init(true, key, nonce))
			ks := make([]byte, 64)
			require.NoError(t, e.GetKeystream(ks, 0, 64))
			outputs[hex.EncodeToString(ks)] = true
		}
		assert.Len(t, outputs, 3)
	})

	t.Run("invalid round count", func(t *testing.T) {
		_, err := New(10)
		assert.IsType(t, RoundCountError(0), err)
	})
}

func TestInitValidation(t *testing.T) {
	t.Run("bad key sizes", func(t *testing.T) {
		for _, n := range []int{0, 8, 31, 33} {
			e, _ := New(20)
			err := e.Init(true, make([]byte, n), make([]byte, 8))
			assert.IsType(t, KeySizeError(0), err, "key size %d", n)
		}
	})

	t.Run("bad nonce sizes", func(t *testing.T) {
		for _, n := range []int{0, 7, 9, 12, 24} {
			e, _ := New(20)
			err := e.Init(true, make([]byte, 32), make([]byte, n))
			assert.IsType(t, NonceSizeError(0), err, "nonce size %d", n)
		}
	})

	t.Run("16-byte key accepted", func(t *testing.T) {
		e, _ := New(20)
		assert.NoError(t, e.Init(true, make([]byte, 16), make([]byte, 8)))
	})
}
