package curve25519

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xcurve "golang.org/x/crypto/curve25519"
)

// RFC 7748 section 6.1 Diffie-Hellman vectors.
const (
	alicePrivHex = "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a"
	alicePubHex  = "8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a"
	bobPrivHex   = "5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb"
	bobPubHex    = "de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f"
	sharedHex    = "4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742"
)

func fromHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestRFC7748Vectors(t *testing.T) {
	t.Run("public key derivation", func(t *testing.T) {
		pub, err := PublicKey(fromHex(t, alicePrivHex))
		require.NoError(t, err)
		assert.Equal(t, fromHex(t, alicePubHex), pub)

		pub, err = PublicKey(fromHex(t, bobPrivHex))
		require.NoError(t, err)
		assert.Equal(t, fromHex(t, bobPubHex), pub)
	})

	t.Run("shared secret", func(t *testing.T) {
		fromAlice, err := SharedSecret(fromHex(t, alicePrivHex), fromHex(t, bobPubHex))
		require.NoError(t, err)
		fromBob, err := SharedSecret(fromHex(t, bobPrivHex), fromHex(t, alicePubHex))
		require.NoError(t, err)

		assert.Equal(t, fromHex(t, sharedHex), fromAlice)
		assert.Equal(t, fromAlice, fromBob)
	})
}

func TestAgainstReference(t *testing.T) {
	t.Run("random scalars match x/crypto", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			priv := make([]byte, 32)
			_, err := rand.Read(priv)
			require.NoError(t, err)
			Clamp(priv)

			pub, err := PublicKey(priv)
			require.NoError(t, err)
			want, err := xcurve.X25519(priv, xcurve.Basepoint)
			require.NoError(t, err)
			assert.Equal(t, want, pub)
		}
	})

	t.Run("non-canonical peer values accepted", func(t *testing.T) {
		peer := bytes.Repeat([]byte{0xFF}, 32)
		_, err := SharedSecret(fromHex(t, alicePrivHex), peer)
		assert.NoError(t, err)
	})
}

func TestClamp(t *testing.T) {
	t.Run("bit ritual", func(t *testing.T) {
		priv := bytes.Repeat([]byte{0xFF}, 32)
		Clamp(priv)
		assert.Equal(t, byte(0xF8), priv[0])
		assert.Equal(t, byte(0x7F), priv[31])

		zero := make([]byte, 32)
		Clamp(zero)
		assert.Equal(t, byte(0x40), zero[31])
	})
}

func TestNaClMode(t *testing.T) {
	t.Run("both sides agree", func(t *testing.T) {
		a, err := SharedSecretNaCl(fromHex(t, alicePrivHex), fromHex(t, bobPubHex))
		require.NoError(t, err)
		b, err := SharedSecretNaCl(fromHex(t, bobPrivHex), fromHex(t, alicePubHex))
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.NotEqual(t, fromHex(t, sharedHex), a)
	})
}

func TestMontgomeryX(t *testing.T) {
	t.Run("ed25519 base point maps to u=9", func(t *testing.T) {
		// The Ed25519 base point has y = 4/5, whose birational image is
		// the Curve25519 generator u = 9.
		edBase := make([]byte, 32)
		edBase[0] = 0x58
		for i := 1; i < 32; i++ {
			edBase[i] = 0x66
		}
		u, err := MontgomeryX(edBase)
		require.NoError(t, err)
		assert.Equal(t, basePoint[:], u)
	})

	t.Run("sign bit ignored", func(t *testing.T) {
		edBase := make([]byte, 32)
		edBase[0] = 0x58
		for i := 1; i < 32; i++ {
			edBase[i] = 0x66
		}
		flipped := append([]byte{}, edBase...)
		flipped[31] |= 0x80
		a, err := MontgomeryX(edBase)
		require.NoError(t, err)
		b, err := MontgomeryX(flipped)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("exceptional point rejected", func(t *testing.T) {
		one := make([]byte, 32)
		one[0] = 1
		_, err := MontgomeryX(one)
		assert.IsType(t, InvalidPointError{}, err)
	})
}

func TestValidation(t *testing.T) {
	t.Run("scalar size", func(t *testing.T) {
		_, err := PublicKey(make([]byte, 31))
		assert.IsType(t, ScalarSizeError(0), err)
	})

	t.Run("point size", func(t *testing.T) {
		_, err := SharedSecret(make([]byte, 32), make([]byte, 33))
		assert.IsType(t, PointSizeError(0), err)
	})
}
