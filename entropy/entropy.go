// Package entropy supplies the randomness handle injected into key
// generation and the payload multiplexer. Two sources are provided: a live
// source over the operating system CSPRNG, and a deterministic source
// keyed from a shared seed, which both ends of a multiplexed package use
// to regenerate the same schedule, stripe and padding draws.
package entropy

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/dromara/veil/stream/chacha"
	"github.com/dromara/veil/util"
)

// Source is a uniform randomness supplier. Implementations are expected to
// be non-blocking; the deterministic source is not safe for concurrent use.
type Source interface {
	// ReadBytes fills b with random bytes.
	ReadBytes(b []byte) error

	// Int draws a uniform integer in [0, bound) by rejection sampling.
	Int(bound int) (int, error)

	// IntRange draws a uniform integer in [min, max].
	IntRange(min, max int) (int, error)
}

// reader adapts any byte supplier into the uniform draws of Source.
type reader struct {
	r io.Reader
}

func (s reader) ReadBytes(b []byte) error {
	if _, err := io.ReadFull(s.r, b); err != nil {
		return SourceError{Err: err}
	}
	return nil
}

func (s reader) Int(bound int) (int, error) {
	if bound <= 0 {
		return 0, BoundError(bound)
	}
	n := uint64(bound)
	// Largest multiple of bound below 2^32; draws at or above it are
	// rejected so every residue is equally likely.
	limit := (1 << 32) / n * n
	var buf [4]byte
	for {
		if err := s.ReadBytes(buf[:]); err != nil {
			return 0, err
		}
		v := uint64(util.UnpackUint32LE(buf[:]))
		if v < limit {
			return int(v % n), nil
		}
	}
}

func (s reader) IntRange(min, max int) (int, error) {
	if min > max {
		return 0, BoundError(min - max)
	}
	n, err := s.Int(max - min + 1)
	if err != nil {
		return 0, err
	}
	return min + n, nil
}

// Live returns a source backed by the operating system CSPRNG.
func Live() Source {
	return reader{r: rand.Reader}
}

// engineReader reads raw keystream from a stream cipher engine.
type engineReader struct {
	engine *chacha.Engine
}

func (e engineReader) Read(p []byte) (int, error) {
	if err := e.engine.GetKeystream(p, 0, len(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Deterministic returns a source whose draws are a pure function of seed:
// a ChaCha20 engine keyed with the SHA-256 of the seed under a zero nonce.
// Both directions of a multiplexed package construct one from the shared
// configuration to reproduce the schedule.
func Deterministic(seed []byte) (Source, error) {
	if len(seed) == 0 {
		return nil, EmptySeedError{}
	}
	key := sha256.Sum256(seed)
	engine, err := chacha.New(20)
	if err != nil {
		return nil, err
	}
	if err := engine.Init(true, key[:], make([]byte, 8)); err != nil {
		return nil, err
	}
	util.WipeBytes(key[:])
	return reader{r: engineReader{engine: engine}}, nil
}
