package jpake

import (
	"math/big"

	"github.com/dromara/veil/util"
)

// SessionState is the exported form of a suspended session: the retained
// private scalar and every round DTO created or received so far. The
// passphrase is never exported; the restoring session supplies it again.
type SessionState struct {
	X2             []byte // unsigned big-endian scalar
	Round1Created  *Round1
	Round1Received *Round1
	Round2Created  *Round2
	Round2Received *Round2
	Round3Created  *Round3
}

// Suspend exports the session's resumable state. The session itself is
// left untouched; callers abandoning it should let it drop.
func (s *Session) Suspend() (*SessionState, error) {
	if s.state == StateInitialised || s.state == StateRound3Validated {
		return nil, StateError{Op: "Suspend", State: s.state}
	}
	st := &SessionState{
		Round1Created:  s.r1Created,
		Round1Received: s.r1Received,
		Round2Created:  s.r2Created,
		Round2Received: s.r2Received,
		Round3Created:  s.r3Created,
	}
	if s.x2 != nil {
		st.X2 = padScalar(s.x2, s.domain.ScalarByteLen())
	}
	return st, nil
}

func padScalar(v *big.Int, size int) []byte {
	out := make([]byte, size)
	v.FillBytes(out)
	return out
}

// Restore rebuilds a suspended exchange onto a fresh session constructed
// with the same identifier, passphrase, curve and digest. The protocol
// state advances to the highest round for which DTOs are present.
// Restoring onto an already-advanced session is rejected.
func (s *Session) Restore(st *SessionState) error {
	if s.state != StateInitialised {
		return RestoreError{Reason: "session already advanced"}
	}
	if st.Round1Created == nil || len(st.X2) == 0 {
		return RestoreError{Reason: "missing round 1 state"}
	}
	if st.Round1Created.ParticipantID != s.participantID {
		return RestoreError{Reason: "participant identifier mismatch"}
	}

	g1, err := s.domain.DecodePoint(st.Round1Created.GX1)
	if err != nil {
		return RestoreError{Reason: err.Error()}
	}
	g2, err := s.domain.DecodePoint(st.Round1Created.GX2)
	if err != nil {
		return RestoreError{Reason: err.Error()}
	}
	s.x2 = new(big.Int).SetBytes(st.X2)
	s.g1 = g1
	s.g2 = g2
	s.r1Created = st.Round1Created
	s.state = StateRound1Created

	if st.Round1Received != nil {
		g3, err := s.domain.DecodePoint(st.Round1Received.GX1)
		if err != nil {
			return RestoreError{Reason: err.Error()}
		}
		g4, err := s.domain.DecodePoint(st.Round1Received.GX2)
		if err != nil {
			return RestoreError{Reason: err.Error()}
		}
		s.g3 = g3
		s.g4 = g4
		s.partnerID = st.Round1Received.ParticipantID
		s.r1Received = st.Round1Received
		s.state = StateRound1Validated
	}
	if st.Round2Created != nil {
		if st.Round1Received == nil {
			return RestoreError{Reason: "round 2 state without round 1 validation"}
		}
		s.r2Created = st.Round2Created
		s.state = StateRound2Created
	}
	if st.Round2Received != nil {
		if st.Round2Created == nil {
			return RestoreError{Reason: "round 2 received without round 2 created"}
		}
		b, err := s.domain.DecodePoint(st.Round2Received.A)
		if err != nil {
			return RestoreError{Reason: err.Error()}
		}
		s.b = b
		s.r2Received = st.Round2Received
		s.state = StateRound2Validated
	}
	if st.Round3Created != nil {
		if st.Round2Received == nil {
			return RestoreError{Reason: "round 3 state without round 2 validation"}
		}
		// Recompute the keying material, then stand at Round3Created with
		// the original confirmation payload.
		if _, err := s.CalculateKeyingMaterial(); err != nil {
			return RestoreError{Reason: err.Error()}
		}
		s.r3Created = st.Round3Created
		s.state = StateRound3Created
	}

	util.WipeBytes(st.X2)
	return nil
}
