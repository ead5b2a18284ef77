// Package jpake implements two-party EC J-PAKE: password-authenticated key
// exchange by juggling over a named short-Weierstrass curve, with Schnorr
// knowledge proofs, three DTO rounds including key confirmation, and
// suspend/resume of a half-run session.
package jpake

import (
	"crypto/hmac"
	"io"
	"math/big"

	"github.com/dromara/veil/digest"
	"github.com/dromara/veil/ec"
	"github.com/dromara/veil/util"
)

// State is the protocol position of a session. Transitions are one-shot
// and strictly forward.
type State int

// Session lifecycle states.
const (
	StateInitialised State = iota
	StateRound1Created
	StateRound1Validated
	StateRound2Created
	StateRound2Validated
	StateKeyCalculated
	StateRound3Created
	StateRound3Validated
)

var stateNames = map[State]string{
	StateInitialised:     "Initialised",
	StateRound1Created:   "Round1Created",
	StateRound1Validated: "Round1Validated",
	StateRound2Created:   "Round2Created",
	StateRound2Validated: "Round2Validated",
	StateKeyCalculated:   "KeyCalculated",
	StateRound3Created:   "Round3Created",
	StateRound3Validated: "Round3Validated",
}

// String returns the lifecycle name of s.
func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "Unknown"
}

// keyConfirmation constants per the key-confirmation construction.
var (
	kcMacLabel = []byte("JPAKE_KC")
	kcTagLabel = []byte("KC_1_U")
)

// Session is one participant of an EC J-PAKE run. A session is single-use
// and not safe for concurrent access.
type Session struct {
	participantID string
	partnerID     string
	domain        *ec.Domain
	dig           digest.Hash
	rand          io.Reader

	password []byte

	x2             *big.Int
	g1, g2, g3, g4 *ec.Point
	b              *ec.Point
	keyingMaterial []byte

	state State

	// Retained DTOs for suspend/resume.
	r1Created, r1Received *Round1
	r2Created, r2Received *Round2
	r3Created             *Round3
}

// NewSession builds a participant with a unique identifier and the shared
// passphrase over the named curve, hashing with the named digest. The
// passphrase bytes are copied and destroyed after key derivation.
func NewSession(participantID string, passphrase []byte, curveName string, dig digest.Hash, rand io.Reader) (*Session, error) {
	if participantID == "" {
		return nil, EmptyParticipantError{}
	}
	if len(passphrase) == 0 {
		return nil, EmptyPassphraseError{}
	}
	d, err := ec.DomainByName(curveName)
	if err != nil {
		return nil, err
	}
	if _, err = dig.New(); err != nil {
		return nil, err
	}
	return &Session{
		participantID: participantID,
		domain:        d,
		dig:           dig,
		rand:          rand,
		password:      append([]byte{}, passphrase...),
		state:         StateInitialised,
	}, nil
}

// ParticipantID returns the session's identifier.
func (s *Session) ParticipantID() string { return s.participantID }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

func (s *Session) requireState(op string, want State) error {
	if s.state != want {
		return StateError{Op: op, State: s.state}
	}
	return nil
}

// s1 reduces the passphrase bytes into the scalar field; a passphrase
// congruent to zero cannot entangle the exchange.
func (s *Session) s1() (*big.Int, error) {
	v := new(big.Int).SetBytes(s.password)
	v.Mod(v, s.domain.N)
	if v.Sign() == 0 {
		return nil, PassphraseZeroError{}
	}
	return v, nil
}

// CreateRound1 draws x1 and x2, commits G*x1 and G*x2 with knowledge
// proofs, and emits the round-1 payload. x1 is discarded once the payload
// exists; only x2 participates in later rounds.
func (s *Session) CreateRound1() (*Round1, error) {
	if err := s.requireState("CreateRound1", StateInitialised); err != nil {
		return nil, err
	}

	x1, err := randomScalar(s.domain, s.rand)
	if err != nil {
		return nil, err
	}
	x2, err := randomScalar(s.domain, s.rand)
	if err != nil {
		return nil, err
	}

	g := s.domain.Generator()
	g1 := s.domain.MultiplyGenerator(x1)
	g2 := s.domain.MultiplyGenerator(x2)

	p1, err := newProof(s.domain, s.dig, g, x1, g1, s.participantID, s.rand)
	if err != nil {
		return nil, err
	}
	p2, err := newProof(s.domain, s.dig, g, x2, g2, s.participantID, s.rand)
	if err != nil {
		return nil, err
	}
	x1.SetInt64(0)

	g1B, err := g1.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	g2B, err := g2.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	v1B, err := p1.V.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	v2B, err := p2.V.EncodePoint(false)
	if err != nil {
		return nil, err
	}

	s.x2 = x2
	s.g1 = g1
	s.g2 = g2
	s.state = StateRound1Created
	s.r1Created = &Round1{
		ParticipantID: s.participantID,
		GX1:           g1B,
		GX2:           g2B,
		X1V:           v1B,
		X1R:           encodeSignedBE(p1.R),
		X2V:           v2B,
		X2R:           encodeSignedBE(p2.R),
	}
	return s.r1Created, nil
}

// ValidateRound1Received verifies the partner's round-1 payload: a distinct
// identifier and both knowledge proofs against the base generator. The
// partner elements are stored as G3 and G4.
func (s *Session) ValidateRound1Received(r *Round1) error {
	if err := s.requireState("ValidateRound1Received", StateRound1Created); err != nil {
		return err
	}
	if r.ParticipantID == "" {
		return EmptyParticipantError{}
	}
	if r.ParticipantID == s.participantID {
		return DuplicateParticipantError(r.ParticipantID)
	}

	g3, err := s.domain.DecodePoint(r.GX1)
	if err != nil {
		return ZKPInvalidError{Reason: err.Error()}
	}
	g4, err := s.domain.DecodePoint(r.GX2)
	if err != nil {
		return ZKPInvalidError{Reason: err.Error()}
	}
	v1, err := s.domain.DecodePoint(r.X1V)
	if err != nil {
		return ZKPInvalidError{Reason: err.Error()}
	}
	v2, err := s.domain.DecodePoint(r.X2V)
	if err != nil {
		return ZKPInvalidError{Reason: err.Error()}
	}

	g := s.domain.Generator()
	if err = verifyProof(s.domain, s.dig, g, g3, &proof{V: v1, R: decodeSignedBE(r.X1R)}, r.ParticipantID); err != nil {
		return err
	}
	if err = verifyProof(s.domain, s.dig, g, g4, &proof{V: v2, R: decodeSignedBE(r.X2R)}, r.ParticipantID); err != nil {
		return err
	}

	s.partnerID = r.ParticipantID
	s.g3 = g3
	s.g4 = g4
	s.r1Received = r
	s.state = StateRound1Validated
	return nil
}

// CreateRound2 entangles the passphrase: A = (G1+G3+G4)*(x2*s) with a
// knowledge proof under the composite generator.
func (s *Session) CreateRound2() (*Round2, error) {
	if err := s.requireState("CreateRound2", StateRound1Validated); err != nil {
		return nil, err
	}
	s1, err := s.s1()
	if err != nil {
		return nil, err
	}

	ga := s.g1.Add(s.g3).Add(s.g4)
	x2s := new(big.Int).Mul(s.x2, s1)
	x2s.Mod(x2s, s.domain.N)
	a := ga.Multiply(x2s)

	p, err := newProof(s.domain, s.dig, ga, x2s, a, s.participantID, s.rand)
	if err != nil {
		return nil, err
	}
	x2s.SetInt64(0)
	s1.SetInt64(0)

	aB, err := a.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	vB, err := p.V.EncodePoint(false)
	if err != nil {
		return nil, err
	}

	s.state = StateRound2Created
	s.r2Created = &Round2{
		ParticipantID: s.participantID,
		A:             aB,
		X2sV:          vB,
		X2sR:          encodeSignedBE(p.R),
	}
	return s.r2Created, nil
}

// ValidateRound2Received verifies the partner's A under the symmetric
// composite generator G3+G1+G2 and stores it as B.
func (s *Session) ValidateRound2Received(r *Round2) error {
	if err := s.requireState("ValidateRound2Received", StateRound2Created); err != nil {
		return err
	}
	if r.ParticipantID != s.partnerID {
		return UnknownParticipantError(r.ParticipantID)
	}

	b, err := s.domain.DecodePoint(r.A)
	if err != nil {
		return ZKPInvalidError{Reason: err.Error()}
	}
	v, err := s.domain.DecodePoint(r.X2sV)
	if err != nil {
		return ZKPInvalidError{Reason: err.Error()}
	}

	gb := s.g3.Add(s.g1).Add(s.g2)
	if err = verifyProof(s.domain, s.dig, gb, b, &proof{V: v, R: decodeSignedBE(r.X2sR)}, r.ParticipantID); err != nil {
		return err
	}

	s.b = b
	s.r2Received = r
	s.state = StateRound2Validated
	return nil
}

// CalculateKeyingMaterial computes the shared point (B - G4*(x2*s))*x2,
// hashes its x-coordinate into the keying material, and destroys the
// passphrase.
func (s *Session) CalculateKeyingMaterial() ([]byte, error) {
	if err := s.requireState("CalculateKeyingMaterial", StateRound2Validated); err != nil {
		return nil, err
	}
	s1, err := s.s1()
	if err != nil {
		return nil, err
	}

	x2s := new(big.Int).Mul(s.x2, s1)
	x2s.Mod(x2s, s.domain.N)
	k := s.b.Add(s.g4.Multiply(x2s).Negate()).Multiply(s.x2)
	x2s.SetInt64(0)
	s1.SetInt64(0)

	x, _, err := k.Normalize()
	if err != nil {
		return nil, KeyCalculationError{Err: err}
	}
	preKey := make([]byte, s.domain.FieldByteLen())
	x.FillBytes(preKey)

	h, err := s.dig.New()
	if err != nil {
		return nil, err
	}
	digest.AbsorbPrefixed(h, preKey)
	s.keyingMaterial = h.Sum(nil)
	util.WipeBytes(preKey)

	util.WipeBytes(s.password)
	s.password = nil

	s.state = StateKeyCalculated
	return append([]byte{}, s.keyingMaterial...), nil
}

// macKey derives the key-confirmation MAC key H(keyingMaterial || "JPAKE_KC").
func (s *Session) macKey() ([]byte, error) {
	h, err := s.dig.New()
	if err != nil {
		return nil, err
	}
	digest.AbsorbPrefixed(h, s.keyingMaterial, kcMacLabel)
	return h.Sum(nil), nil
}

// confirmationTag computes HMAC(macKey, "KC_1_U" || idA || idB || first
// four elements), with every component length-prefixed.
func (s *Session) confirmationTag(mk []byte, idA, idB string, e1, e2, e3, e4 *ec.Point) ([]byte, error) {
	e1B, err := e1.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	e2B, err := e2.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	e3B, err := e3.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	e4B, err := e4.EncodePoint(false)
	if err != nil {
		return nil, err
	}
	m := hmac.New(s.dig.NewFunc(), mk)
	digest.AbsorbPrefixed(m, kcTagLabel, util.String2Bytes(idA), util.String2Bytes(idB), e1B, e2B, e3B, e4B)
	return m.Sum(nil), nil
}

// CreateRound3 emits the key-confirmation payload.
func (s *Session) CreateRound3() (*Round3, error) {
	if err := s.requireState("CreateRound3", StateKeyCalculated); err != nil {
		return nil, err
	}
	mk, err := s.macKey()
	if err != nil {
		return nil, err
	}
	tag, err := s.confirmationTag(mk, s.participantID, s.partnerID, s.g1, s.g2, s.g3, s.g4)
	util.WipeBytes(mk)
	if err != nil {
		return nil, err
	}
	s.state = StateRound3Created
	s.r3Created = &Round3{ParticipantID: s.participantID, VerifiedOutput: tag}
	return s.r3Created, nil
}

// ValidateRound3Received recomputes the partner's expected tag with the
// roles and elements swapped and compares in constant time. On success the
// session's secrets are destroyed and the keying material stands; on
// mismatch the secrets are destroyed and KeyConfirmationFailedError is
// returned, to be treated as a possible man-in-the-middle.
func (s *Session) ValidateRound3Received(r *Round3) error {
	if err := s.requireState("ValidateRound3Received", StateRound3Created); err != nil {
		return err
	}
	if r.ParticipantID != s.partnerID {
		return UnknownParticipantError(r.ParticipantID)
	}
	mk, err := s.macKey()
	if err != nil {
		return err
	}
	expected, err := s.confirmationTag(mk, s.partnerID, s.participantID, s.g3, s.g4, s.g1, s.g2)
	util.WipeBytes(mk)
	if err != nil {
		return err
	}

	ok := util.ConstantTimeEquals(expected, r.VerifiedOutput)
	util.WipeBytes(expected)
	s.wipeSecrets()
	if !ok {
		util.WipeBytes(s.keyingMaterial)
		s.keyingMaterial = nil
		return KeyConfirmationFailedError{}
	}
	s.state = StateRound3Validated
	return nil
}

// KeyingMaterial returns the negotiated keying material once calculated.
func (s *Session) KeyingMaterial() ([]byte, error) {
	if s.state < StateKeyCalculated || s.keyingMaterial == nil {
		return nil, StateError{Op: "KeyingMaterial", State: s.state}
	}
	return append([]byte{}, s.keyingMaterial...), nil
}

// wipeSecrets destroys the ephemeral secrets and group elements retained
// by the exchange.
func (s *Session) wipeSecrets() {
	if s.x2 != nil {
		s.x2.SetInt64(0)
		s.x2 = nil
	}
	if s.password != nil {
		util.WipeBytes(s.password)
		s.password = nil
	}
	s.b = nil
	s.g1, s.g2, s.g3, s.g4 = nil, nil, nil, nil
}
