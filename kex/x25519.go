package kex

import (
	"io"

	"github.com/dromara/veil/curve25519"
)

// GenerateX25519KeyPair draws a fresh private scalar from rand, clamps it,
// and derives the public value.
func GenerateX25519KeyPair(rand io.Reader) (priv, pub []byte, err error) {
	priv = make([]byte, curve25519.ScalarSize)
	if _, err = io.ReadFull(rand, priv); err != nil {
		return nil, nil, SharedSecretError{Err: err}
	}
	curve25519.Clamp(priv)
	pub, err = curve25519.PublicKey(priv)
	if err != nil {
		return nil, nil, err
	}
	return priv, pub, nil
}

// X25519 computes the raw shared secret between a private scalar and a
// peer public value. Any 32-byte peer value is accepted per RFC 7748.
func X25519(priv, peerPub []byte) ([]byte, error) {
	return curve25519.SharedSecret(priv, peerPub)
}

// X25519NaCl computes the shared secret in the NaCl-compatible form,
// post-processing through HSalsa20 with a zero nonce.
func X25519NaCl(priv, peerPub []byte) ([]byte, error) {
	return curve25519.SharedSecretNaCl(priv, peerPub)
}
