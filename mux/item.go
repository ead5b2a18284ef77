package mux

import (
	"io"

	"github.com/dromara/veil/digest"
	"github.com/dromara/veil/util"
)

// ItemID is the 128-bit identifier of a payload item.
type ItemID [16]byte

// Item is one payload of a multiplexed package. In the write direction
// Source supplies ExternalLength plaintext bytes; in the read direction
// Sink receives them and Authentication carries the expected tag.
type Item struct {
	ID         ItemID
	CipherName string    // stream cipher engine name
	KeySize    int       // derived cipher key length in bytes
	NonceSize  int       // derived cipher nonce length in bytes
	MAC        MACScheme // authenticator attached to the EtM decorator

	ExternalLength int64 // plaintext size
	InternalLength int64 // ciphertext size after EtM overhead

	// Authentication holds the verified MAC output: written on finish in
	// the write direction, compared on finish in the read direction.
	Authentication []byte

	Source io.Reader
	Sink   io.Writer
}

// authenticatableBytes returns the canonical byte representation of the
// item excluding the MAC field, absorbed into the authenticator when the
// item finishes.
func (it *Item) authenticatableBytes() []byte {
	var ext, intl [8]byte
	util.PackUint64LE(ext[:], uint64(it.ExternalLength))
	util.PackUint64LE(intl[:], uint64(it.InternalLength))

	h := newAbsorbBuffer()
	h.absorb(it.ID[:])
	h.absorb(util.String2Bytes(it.CipherName))
	h.absorb(util.String2Bytes(string(it.MAC)))
	h.absorb(ext[:])
	h.absorb(intl[:])
	return h.bytes
}

// absorbBuffer accumulates length-prefixed fields, mirroring the digest
// absorb framing for in-memory serialization.
type absorbBuffer struct {
	bytes []byte
}

func newAbsorbBuffer() *absorbBuffer { return &absorbBuffer{} }

func (a *absorbBuffer) absorb(field []byte) {
	var prefix [4]byte
	util.PackUint32LE(prefix[:], uint32(len(field)))
	a.bytes = append(a.bytes, prefix[:]...)
	a.bytes = append(a.bytes, field...)
}

// closeBinding closes whichever stream binding the direction uses, when it
// is closeable.
func (it *Item) closeBinding(writing bool) error {
	var v interface{}
	if writing {
		v = it.Source
	} else {
		v = it.Sink
	}
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// validate checks the item configuration for the given direction.
func (it *Item) validate(writing bool) error {
	if it.CipherName == "" {
		return ItemConfigError{ID: it.ID, Reason: "missing cipher name"}
	}
	if it.MAC == "" {
		return ItemConfigError{ID: it.ID, Reason: "missing MAC scheme"}
	}
	if it.KeySize <= 0 {
		return ItemConfigError{ID: it.ID, Reason: "missing key size"}
	}
	if it.NonceSize < 0 {
		return ItemConfigError{ID: it.ID, Reason: "negative nonce size"}
	}
	if it.ExternalLength < 0 || it.InternalLength < 0 {
		return ItemConfigError{ID: it.ID, Reason: "negative length"}
	}
	if writing {
		if it.Source == nil {
			return ItemConfigError{ID: it.ID, Reason: "missing source binding"}
		}
	} else {
		if it.Sink == nil {
			return ItemConfigError{ID: it.ID, Reason: "missing sink binding"}
		}
		if it.InternalLength == 0 && it.ExternalLength > 0 {
			return ItemConfigError{ID: it.ID, Reason: "missing internal length"}
		}
	}
	return nil
}

// digestForKDF is the digest the per-item key derivation runs over.
const digestForKDF = digest.SHA256
