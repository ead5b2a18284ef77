package jpake

import (
	"crypto/rand"
	"testing"

	"github.com/dromara/veil/digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCurve = "secp256r1"

func newPair(t *testing.T, passA, passB string) (*Session, *Session) {
	a, err := NewSession("alice", []byte(passA), testCurve, digest.SHA256, rand.Reader)
	require.NoError(t, err)
	b, err := NewSession("bob", []byte(passB), testCurve, digest.SHA256, rand.Reader)
	require.NoError(t, err)
	return a, b
}

// runToKey advances both sessions through round 2 validation and key
// calculation.
func runToKey(t *testing.T, a, b *Session) (ka, kb []byte) {
	a1, err := a.CreateRound1()
	require.NoError(t, err)
	b1, err := b.CreateRound1()
	require.NoError(t, err)
	require.NoError(t, a.ValidateRound1Received(b1))
	require.NoError(t, b.ValidateRound1Received(a1))

	a2, err := a.CreateRound2()
	require.NoError(t, err)
	b2, err := b.CreateRound2()
	require.NoError(t, err)
	require.NoError(t, a.ValidateRound2Received(b2))
	require.NoError(t, b.ValidateRound2Received(a2))

	ka, err = a.CalculateKeyingMaterial()
	require.NoError(t, err)
	kb, err = b.CalculateKeyingMaterial()
	require.NoError(t, err)
	return ka, kb
}

func TestHappyPath(t *testing.T) {
	t.Run("matching passphrases agree and confirm", func(t *testing.T) {
		a, b := newPair(t, "correct horse battery staple", "correct horse battery staple")
		ka, kb := runToKey(t, a, b)
		assert.Equal(t, ka, kb)

		a3, err := a.CreateRound3()
		require.NoError(t, err)
		b3, err := b.CreateRound3()
		require.NoError(t, err)
		assert.NoError(t, a.ValidateRound3Received(b3))
		assert.NoError(t, b.ValidateRound3Received(a3))

		assert.Equal(t, StateRound3Validated, a.State())
		assert.Equal(t, StateRound3Validated, b.State())

		km, err := a.KeyingMaterial()
		require.NoError(t, err)
		assert.Equal(t, ka, km)
	})

	t.Run("state advances through the lifecycle", func(t *testing.T) {
		a, b := newPair(t, "pw", "pw")
		assert.Equal(t, StateInitialised, a.State())
		a1, _ := a.CreateRound1()
		assert.Equal(t, StateRound1Created, a.State())
		b1, _ := b.CreateRound1()
		require.NoError(t, a.ValidateRound1Received(b1))
		assert.Equal(t, StateRound1Validated, a.State())
		require.NoError(t, b.ValidateRound1Received(a1))

		_, err := a.CreateRound2()
		require.NoError(t, err)
		assert.Equal(t, StateRound2Created, a.State())
	})
}

func TestMismatchedPassphrase(t *testing.T) {
	t.Run("round 2 verifies but round 3 fails", func(t *testing.T) {
		a, b := newPair(t, "passphrase one", "passphrase two")
		ka, kb := runToKey(t, a, b)
		assert.NotEqual(t, ka, kb)

		a3, err := a.CreateRound3()
		require.NoError(t, err)
		_, err = b.CreateRound3()
		require.NoError(t, err)

		err = b.ValidateRound3Received(a3)
		assert.IsType(t, KeyConfirmationFailedError{}, err)

		// The failed session destroyed its keying material.
		_, err = b.KeyingMaterial()
		assert.Error(t, err)
	})
}

func TestZKPTampering(t *testing.T) {
	t.Run("flipped commitment bit", func(t *testing.T) {
		a, b := newPair(t, "pw", "pw")
		a1, err := a.CreateRound1()
		require.NoError(t, err)
		_, err = b.CreateRound1()
		require.NoError(t, err)

		a1.X1V[len(a1.X1V)/2] ^= 0x10
		err = b.ValidateRound1Received(a1)
		assert.Error(t, err)
	})

	t.Run("flipped response bit", func(t *testing.T) {
		a, b := newPair(t, "pw", "pw")
		a1, err := a.CreateRound1()
		require.NoError(t, err)
		_, err = b.CreateRound1()
		require.NoError(t, err)

		a1.X2R[0] ^= 0x01
		err = b.ValidateRound1Received(a1)
		assert.IsType(t, ZKPInvalidError{}, err)
	})

	t.Run("flipped round 2 proof", func(t *testing.T) {
		a, b := newPair(t, "pw", "pw")
		a1, _ := a.CreateRound1()
		b1, _ := b.CreateRound1()
		require.NoError(t, a.ValidateRound1Received(b1))
		require.NoError(t, b.ValidateRound1Received(a1))

		a2, err := a.CreateRound2()
		require.NoError(t, err)
		_, err = b.CreateRound2()
		require.NoError(t, err)

		a2.X2sR[len(a2.X2sR)-1] ^= 0x80
		err = b.ValidateRound2Received(a2)
		assert.IsType(t, ZKPInvalidError{}, err)
	})
}

func TestStateMisuse(t *testing.T) {
	t.Run("round 2 before round 1 validation", func(t *testing.T) {
		a, _ := newPair(t, "pw", "pw")
		_, err := a.CreateRound2()
		assert.IsType(t, StateError{}, err)
	})

	t.Run("double round 1 creation", func(t *testing.T) {
		a, _ := newPair(t, "pw", "pw")
		_, err := a.CreateRound1()
		require.NoError(t, err)
		_, err = a.CreateRound1()
		assert.IsType(t, StateError{}, err)
	})

	t.Run("keying material before calculation", func(t *testing.T) {
		a, _ := newPair(t, "pw", "pw")
		_, err := a.KeyingMaterial()
		assert.IsType(t, StateError{}, err)
	})
}

func TestParticipantValidation(t *testing.T) {
	t.Run("empty id rejected", func(t *testing.T) {
		_, err := NewSession("", []byte("pw"), testCurve, digest.SHA256, rand.Reader)
		assert.IsType(t, EmptyParticipantError{}, err)
	})

	t.Run("empty passphrase rejected", func(t *testing.T) {
		_, err := NewSession("alice", nil, testCurve, digest.SHA256, rand.Reader)
		assert.IsType(t, EmptyPassphraseError{}, err)
	})

	t.Run("duplicate participant rejected", func(t *testing.T) {
		a, err := NewSession("alice", []byte("pw"), testCurve, digest.SHA256, rand.Reader)
		require.NoError(t, err)
		b, err := NewSession("alice", []byte("pw"), testCurve, digest.SHA256, rand.Reader)
		require.NoError(t, err)

		_, err = a.CreateRound1()
		require.NoError(t, err)
		b1, err := b.CreateRound1()
		require.NoError(t, err)
		err = a.ValidateRound1Received(b1)
		assert.IsType(t, DuplicateParticipantError(""), err)
	})
}

func TestSuspendResume(t *testing.T) {
	t.Run("resumed session confirms identically", func(t *testing.T) {
		a, b := newPair(t, "shared secret", "shared secret")

		a1, err := a.CreateRound1()
		require.NoError(t, err)
		b1, err := b.CreateRound1()
		require.NoError(t, err)
		require.NoError(t, a.ValidateRound1Received(b1))
		require.NoError(t, b.ValidateRound1Received(a1))

		a2, err := a.CreateRound2()
		require.NoError(t, err)
		b2, err := b.CreateRound2()
		require.NoError(t, err)
		require.NoError(t, a.ValidateRound2Received(b2))
		require.NoError(t, b.ValidateRound2Received(a2))

		// Suspend alice and restore onto a fresh session with the same
		// inputs.
		st, err := a.Suspend()
		require.NoError(t, err)
		a2nd, err := NewSession("alice", []byte("shared secret"), testCurve, digest.SHA256, rand.Reader)
		require.NoError(t, err)
		require.NoError(t, a2nd.Restore(st))
		assert.Equal(t, StateRound2Validated, a2nd.State())

		ka, err := a2nd.CalculateKeyingMaterial()
		require.NoError(t, err)
		kb, err := b.CalculateKeyingMaterial()
		require.NoError(t, err)
		assert.Equal(t, ka, kb)

		a3, err := a2nd.CreateRound3()
		require.NoError(t, err)
		b3, err := b.CreateRound3()
		require.NoError(t, err)
		assert.NoError(t, a2nd.ValidateRound3Received(b3))
		assert.NoError(t, b.ValidateRound3Received(a3))
	})

	t.Run("restore onto advanced session rejected", func(t *testing.T) {
		a, b := newPair(t, "pw", "pw")
		_, err := a.CreateRound1()
		require.NoError(t, err)
		st, err := a.Suspend()
		require.NoError(t, err)

		_, err = b.CreateRound1()
		require.NoError(t, err)
		err = b.Restore(st)
		assert.IsType(t, RestoreError{}, err)
	})

	t.Run("suspend before round 1 rejected", func(t *testing.T) {
		a, _ := newPair(t, "pw", "pw")
		_, err := a.Suspend()
		assert.IsType(t, StateError{}, err)
	})
}
