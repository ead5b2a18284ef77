package jpake

import (
	"math/big"
)

// Round DTOs carry the protocol payloads between participants. Points are
// SEC1 encoded; ZKP scalars use signed big-endian two's-complement bytes,
// and the key-confirmation tag uses unsigned big-endian bytes.

// Round1 is the symmetric first-round payload: both ephemeral public
// elements and their knowledge proofs.
type Round1 struct {
	ParticipantID string
	GX1           []byte // G*x1, SEC1
	GX2           []byte // G*x2, SEC1
	X1V           []byte // ZKP commitment for x1, SEC1
	X1R           []byte // ZKP response for x1, signed BE
	X2V           []byte // ZKP commitment for x2, SEC1
	X2R           []byte // ZKP response for x2, signed BE
}

// Round2 carries the password-entangled element A and its proof under the
// composite generator.
type Round2 struct {
	ParticipantID string
	A             []byte // GA*(x2*s), SEC1
	X2sV          []byte // ZKP commitment for x2*s, SEC1
	X2sR          []byte // ZKP response for x2*s, signed BE
}

// Round3 carries the key-confirmation tag.
type Round3 struct {
	ParticipantID  string
	VerifiedOutput []byte // HMAC tag, unsigned BE
}

// encodeSignedBE serializes v as minimal-length signed big-endian
// two's-complement bytes, the DTO format for ZKP responses.
func encodeSignedBE(v *big.Int) []byte {
	if v.Sign() == 0 {
		return []byte{0}
	}
	b := v.Bytes()
	if v.Sign() > 0 {
		if b[0]&0x80 != 0 {
			return append([]byte{0}, b...)
		}
		return b
	}
	// Negative values do not occur for reduced scalars but the format
	// carries them: complement of the magnitude.
	bits := len(b) * 8
	m := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	m.Add(m, v)
	out := m.Bytes()
	if out[0]&0x80 == 0 {
		out = append([]byte{0xFF}, out...)
	}
	return out
}

// decodeSignedBE parses signed big-endian two's-complement bytes.
func decodeSignedBE(b []byte) *big.Int {
	if len(b) == 0 {
		return new(big.Int)
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		m := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
		v.Sub(v, m)
	}
	return v
}
