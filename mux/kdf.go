package mux

import (
	"io"

	"golang.org/x/crypto/hkdf"
)

// kdfInfo labels the per-item expansion so the same pre-key can never feed
// another context.
var kdfInfo = []byte("veil/mux item material")

// deriveItemMaterial expands an item's pre-key into cipher key, cipher
// nonce and MAC key via HKDF, salted with the item identifier.
func deriveItemMaterial(preKey []byte, id ItemID, keyLen, nonceLen, macKeyLen int) (key, nonce, macKey []byte, err error) {
	r := hkdf.New(digestForKDF.NewFunc(), preKey, id[:], kdfInfo)
	key = make([]byte, keyLen)
	nonce = make([]byte, nonceLen)
	macKey = make([]byte, macKeyLen)
	if _, err = io.ReadFull(r, key); err != nil {
		return nil, nil, nil, KDFError{Err: err}
	}
	if _, err = io.ReadFull(r, nonce); err != nil {
		return nil, nil, nil, KDFError{Err: err}
	}
	if _, err = io.ReadFull(r, macKey); err != nil {
		return nil, nil, nil, KDFError{Err: err}
	}
	return key, nonce, macKey, nil
}
