// Package digest provides the hash collaborator consumed by the key
// agreement and key derivation layers. It exposes a closed registry of
// named digests and the length-prefixed absorb helper used when hashing
// protocol transcripts.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/emmansun/gmsm/sm3"
	"golang.org/x/crypto/blake2b"
)

// Hash identifies a digest in the registry.
type Hash string

// Supported digests.
const (
	SHA256     Hash = "SHA-256"
	SHA384     Hash = "SHA-384"
	SHA512     Hash = "SHA-512"
	BLAKE2b256 Hash = "BLAKE2b-256"
	BLAKE2b512 Hash = "BLAKE2b-512"
	SM3        Hash = "SM3"
)

// New returns a fresh hash.Hash for the named digest.
// Unknown names return an UnknownDigestError.
func (h Hash) New() (hash.Hash, error) {
	switch h {
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	case BLAKE2b256:
		d, _ := blake2b.New256(nil)
		return d, nil
	case BLAKE2b512:
		d, _ := blake2b.New512(nil)
		return d, nil
	case SM3:
		return sm3.New(), nil
	}
	return nil, UnknownDigestError(h)
}

// Size returns the output size in bytes of the named digest.
func (h Hash) Size() int {
	switch h {
	case SHA256, BLAKE2b256, SM3:
		return 32
	case SHA384:
		return 48
	case SHA512, BLAKE2b512:
		return 64
	}
	return 0
}

// NewFunc returns a constructor suitable for hmac.New and hkdf.New.
// It panics on unknown names; callers resolve the name with New first.
func (h Hash) NewFunc() func() hash.Hash {
	return func() hash.Hash {
		d, err := h.New()
		if err != nil {
			panic(err)
		}
		return d
	}
}
