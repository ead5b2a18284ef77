package mux

import (
	"crypto/hmac"

	"github.com/dromara/veil/digest"
	"golang.org/x/crypto/poly1305"
)

// MACScheme names the authenticator attached to an item's EtM decorator.
type MACScheme string

// Supported authenticators.
const (
	MACHMACSHA256  MACScheme = "HMAC-SHA-256"
	MACHMACSHA512  MACScheme = "HMAC-SHA-512"
	MACHMACBLAKE2b MACScheme = "HMAC-BLAKE2b-256"
	MACPoly1305    MACScheme = "Poly1305"
)

// Authenticator absorbs ciphertext and the item's canonical bytes and
// produces the item tag.
type Authenticator interface {
	Write(p []byte) (int, error)
	Sum() []byte
	Size() int
	KeyLength() int
}

type hmacAuth struct {
	inner interface {
		Write(p []byte) (int, error)
		Sum(b []byte) []byte
		Size() int
	}
}

func (h hmacAuth) Write(p []byte) (int, error) { return h.inner.Write(p) }
func (h hmacAuth) Sum() []byte                 { return h.inner.Sum(nil) }
func (h hmacAuth) Size() int                   { return h.inner.Size() }
func (h hmacAuth) KeyLength() int              { return h.inner.Size() }

type polyAuth struct {
	mac *poly1305.MAC
}

func (p polyAuth) Write(b []byte) (int, error) { return p.mac.Write(b) }
func (p polyAuth) Sum() []byte                 { return p.mac.Sum(nil) }
func (p polyAuth) Size() int                   { return poly1305.TagSize }
func (p polyAuth) KeyLength() int              { return 32 }

// macKeyLength returns the key length the named scheme consumes.
func macKeyLength(scheme MACScheme) (int, error) {
	switch scheme {
	case MACHMACSHA256, MACHMACBLAKE2b, MACPoly1305:
		return 32, nil
	case MACHMACSHA512:
		return 64, nil
	}
	return 0, UnknownMACError(scheme)
}

// newAuthenticator builds the named authenticator over key.
func newAuthenticator(scheme MACScheme, key []byte) (Authenticator, error) {
	switch scheme {
	case MACHMACSHA256:
		return hmacAuth{inner: hmac.New(digest.SHA256.NewFunc(), key)}, nil
	case MACHMACSHA512:
		return hmacAuth{inner: hmac.New(digest.SHA512.NewFunc(), key)}, nil
	case MACHMACBLAKE2b:
		return hmacAuth{inner: hmac.New(digest.BLAKE2b256.NewFunc(), key)}, nil
	case MACPoly1305:
		if len(key) != 32 {
			return nil, MACKeySizeError(len(key))
		}
		var k [32]byte
		copy(k[:], key)
		return polyAuth{mac: poly1305.New(&k)}, nil
	}
	return nil, UnknownMACError(scheme)
}
