package mux

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/dromara/veil/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture builds n items with random bodies and pre-keys across a spread of
// engines and MACs.
type fixture struct {
	items   []*Item
	bodies  [][]byte
	preKeys map[ItemID][]byte
}

var fixtureCiphers = []struct {
	name    string
	keySize int
	nonce   int
	mac     MACScheme
}{
	{"ChaCha20", 32, 8, MACHMACSHA256},
	{"Salsa20", 32, 8, MACPoly1305},
	{"HC-128", 16, 16, MACHMACSHA512},
	{"SOSEMANUK", 32, 16, MACHMACBLAKE2b},
	{"Rabbit", 16, 8, MACHMACSHA256},
}

func newFixture(t *testing.T, sizes []int) *fixture {
	f := &fixture{preKeys: make(map[ItemID][]byte)}
	for i, size := range sizes {
		body := make([]byte, size)
		_, err := rand.Read(body)
		require.NoError(t, err)

		var id ItemID
		_, err = rand.Read(id[:])
		require.NoError(t, err)

		c := fixtureCiphers[i%len(fixtureCiphers)]
		f.items = append(f.items, &Item{
			ID:             id,
			CipherName:     c.name,
			KeySize:        c.keySize,
			NonceSize:      c.nonce,
			MAC:            c.mac,
			ExternalLength: int64(size),
			Source:         bytes.NewReader(body),
		})
		f.bodies = append(f.bodies, body)

		preKey := make([]byte, 32)
		_, err = rand.Read(preKey)
		require.NoError(t, err)
		f.preKeys[id] = preKey
	}
	return f
}

// readItems rebuilds read-direction items from the post-write state.
func (f *fixture) readItems() ([]*Item, []*bytes.Buffer) {
	var items []*Item
	var sinks []*bytes.Buffer
	for _, it := range f.items {
		sink := &bytes.Buffer{}
		sinks = append(sinks, sink)
		items = append(items, &Item{
			ID:             it.ID,
			CipherName:     it.CipherName,
			KeySize:        it.KeySize,
			NonceSize:      it.NonceSize,
			MAC:            it.MAC,
			ExternalLength: it.ExternalLength,
			InternalLength: it.InternalLength,
			Authentication: it.Authentication,
			Sink:           sink,
		})
	}
	return items, sinks
}

func roundTrip(t *testing.T, cfg Config, sizes []int) {
	f := newFixture(t, sizes)

	var wire bytes.Buffer
	w, err := NewWriter(&wire, f.items, f.preKeys, cfg)
	require.NoError(t, err)
	require.NoError(t, w.Execute())
	assert.Equal(t, len(sizes), w.ItemsCompleted())

	for _, it := range f.items {
		assert.NotEmpty(t, it.Authentication)
		assert.Equal(t, it.ExternalLength, it.InternalLength)
	}

	items, sinks := f.readItems()
	r, err := NewReader(bytes.NewReader(wire.Bytes()), items, f.preKeys, cfg)
	require.NoError(t, err)
	require.NoError(t, r.Execute())

	assert.Equal(t, w.CompletionRegister(), r.CompletionRegister())
	for i, sink := range sinks {
		assert.True(t, bytes.Equal(f.bodies[i], sink.Bytes()), "item %d", i)
	}
}

func TestRoundTrip(t *testing.T) {
	sizes := []int{1000, 1, 4096, 313, 9000}

	t.Run("simple", func(t *testing.T) {
		roundTrip(t, Config{Scheme: SchemeSimple, Seed: []byte("seed")}, sizes)
	})

	t.Run("frameshift variable", func(t *testing.T) {
		roundTrip(t, Config{Scheme: SchemeFrameshift, Minimum: 8, Maximum: 512, Seed: []byte("seed")}, sizes)
	})

	t.Run("frameshift fixed", func(t *testing.T) {
		roundTrip(t, Config{Scheme: SchemeFrameshift, Minimum: 64, Maximum: 64, Seed: []byte("seed")}, sizes)
	})

	t.Run("fabric variable", func(t *testing.T) {
		roundTrip(t, Config{Scheme: SchemeFabric, Minimum: 8, Maximum: 1024, Seed: []byte("seed")}, sizes)
	})

	t.Run("fabric fixed stripe", func(t *testing.T) {
		roundTrip(t, Config{Scheme: SchemeFabric, Minimum: 256, Maximum: 256, Seed: []byte("seed")}, sizes)
	})

	t.Run("single item", func(t *testing.T) {
		roundTrip(t, Config{Scheme: SchemeFabric, Minimum: 8, Maximum: 64, Seed: []byte("seed")}, []int{777})
	})
}

func TestScheduleDeterminism(t *testing.T) {
	t.Run("same seed same wire bytes", func(t *testing.T) {
		// Simple and Fabric emit only ciphertext, so identical inputs and
		// seeds produce identical multiplexed output.
		body := []byte("determinism of the schedule and stripes")
		build := func() (*fixture, Config) {
			f := &fixture{preKeys: make(map[ItemID][]byte)}
			for i := 0; i < 3; i++ {
				var id ItemID
				id[0] = byte(i + 1)
				f.items = append(f.items, &Item{
					ID:             id,
					CipherName:     "ChaCha20",
					KeySize:        32,
					NonceSize:      8,
					MAC:            MACHMACSHA256,
					ExternalLength: int64(len(body)),
					Source:         bytes.NewReader(body),
				})
				f.preKeys[id] = bytes.Repeat([]byte{byte(i + 9)}, 32)
			}
			return f, Config{Scheme: SchemeFabric, Minimum: 8, Maximum: 16, Seed: []byte("fixed seed")}
		}

		fa, cfg := build()
		var wa bytes.Buffer
		ma, err := NewWriter(&wa, fa.items, fa.preKeys, cfg)
		require.NoError(t, err)
		require.NoError(t, ma.Execute())

		fb, _ := build()
		var wb bytes.Buffer
		mb, err := NewWriter(&wb, fb.items, fb.preKeys, cfg)
		require.NoError(t, err)
		require.NoError(t, mb.Execute())

		assert.Equal(t, wa.Bytes(), wb.Bytes())
	})
}

func TestSkipRegister(t *testing.T) {
	for _, scheme := range []Config{
		{Scheme: SchemeSimple, Seed: []byte("s")},
		{Scheme: SchemeFrameshift, Minimum: 8, Maximum: 128, Seed: []byte("s")},
		{Scheme: SchemeFabric, Minimum: 8, Maximum: 512, Seed: []byte("s")},
	} {
		scheme := scheme
		t.Run(scheme.Scheme.String(), func(t *testing.T) {
			f := newFixture(t, []int{2000, 555, 3000})

			var wire bytes.Buffer
			w, err := NewWriter(&wire, f.items, f.preKeys, scheme)
			require.NoError(t, err)
			require.NoError(t, w.Execute())

			items, sinks := f.readItems()
			cfg := scheme
			cfg.SkipIDs = []ItemID{items[1].ID}
			r, err := NewReader(bytes.NewReader(wire.Bytes()), items, f.preKeys, cfg)
			require.NoError(t, err)
			require.NoError(t, r.Execute())

			// The skipped item produced nothing; the others are lossless.
			assert.Equal(t, 0, sinks[1].Len())
			assert.True(t, bytes.Equal(f.bodies[0], sinks[0].Bytes()))
			assert.True(t, bytes.Equal(f.bodies[2], sinks[2].Bytes()))
			assert.Equal(t, 3, r.ItemsCompleted())
		})
	}

	t.Run("skip register rejected when writing", func(t *testing.T) {
		f := newFixture(t, []int{100})
		var wire bytes.Buffer
		_, err := NewWriter(&wire, f.items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s"), SkipIDs: []ItemID{f.items[0].ID}})
		assert.IsType(t, SkipWhileWritingError{}, err)
	})
}

func TestAuthentication(t *testing.T) {
	t.Run("ciphertext tampering detected", func(t *testing.T) {
		f := newFixture(t, []int{1500})

		var wire bytes.Buffer
		w, err := NewWriter(&wire, f.items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		require.NoError(t, err)
		require.NoError(t, w.Execute())

		tampered := wire.Bytes()
		tampered[700] ^= 0x01

		items, _ := f.readItems()
		r, err := NewReader(bytes.NewReader(tampered), items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		require.NoError(t, err)
		err = r.Execute()
		assert.IsType(t, AuthenticationFailedError{}, err)
	})

	t.Run("padding tampering detected", func(t *testing.T) {
		f := newFixture(t, []int{900})

		cfg := Config{Scheme: SchemeFrameshift, Minimum: 32, Maximum: 32, Seed: []byte("s")}
		var wire bytes.Buffer
		w, err := NewWriter(&wire, f.items, f.preKeys, cfg)
		require.NoError(t, err)
		require.NoError(t, w.Execute())

		tampered := wire.Bytes()
		tampered[3] ^= 0xFF // inside the 32-byte header padding

		items, _ := f.readItems()
		r, err := NewReader(bytes.NewReader(tampered), items, f.preKeys, cfg)
		require.NoError(t, err)
		err = r.Execute()
		assert.IsType(t, AuthenticationFailedError{}, err)
	})

	t.Run("wrong expected tag detected", func(t *testing.T) {
		f := newFixture(t, []int{321})

		var wire bytes.Buffer
		w, err := NewWriter(&wire, f.items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		require.NoError(t, err)
		require.NoError(t, w.Execute())

		items, _ := f.readItems()
		items[0].Authentication[0] ^= 0x01
		r, err := NewReader(bytes.NewReader(wire.Bytes()), items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		require.NoError(t, err)
		err = r.Execute()
		assert.IsType(t, AuthenticationFailedError{}, err)
	})
}

func TestConstruction(t *testing.T) {
	t.Run("frameshift bounds", func(t *testing.T) {
		f := newFixture(t, []int{10})
		var wire bytes.Buffer
		for _, bounds := range [][2]int{{4, 100}, {8, 513}, {100, 50}, {0, 0}} {
			_, err := NewWriter(&wire, f.items, f.preKeys, Config{Scheme: SchemeFrameshift, Minimum: bounds[0], Maximum: bounds[1], Seed: []byte("s")})
			assert.IsType(t, SchemeBoundsError{}, err, "bounds %v", bounds)
		}
	})

	t.Run("fabric bounds", func(t *testing.T) {
		f := newFixture(t, []int{10})
		var wire bytes.Buffer
		for _, bounds := range [][2]int{{4, 100}, {8, 32769}, {512, 256}} {
			_, err := NewWriter(&wire, f.items, f.preKeys, Config{Scheme: SchemeFabric, Minimum: bounds[0], Maximum: bounds[1], Seed: []byte("s")})
			assert.IsType(t, SchemeBoundsError{}, err, "bounds %v", bounds)
		}
	})

	t.Run("empty item set", func(t *testing.T) {
		var wire bytes.Buffer
		_, err := NewWriter(&wire, nil, nil, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		assert.IsType(t, NoItemsError{}, err)
	})

	t.Run("duplicate identifiers", func(t *testing.T) {
		f := newFixture(t, []int{10, 10})
		f.items[1].ID = f.items[0].ID
		var wire bytes.Buffer
		_, err := NewWriter(&wire, f.items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		assert.IsType(t, DuplicateItemError{}, err)
	})

	t.Run("missing pre-key", func(t *testing.T) {
		f := newFixture(t, []int{10})
		delete(f.preKeys, f.items[0].ID)
		var wire bytes.Buffer
		_, err := NewWriter(&wire, f.items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		assert.IsType(t, MissingPreKeyError{}, err)
	})

	t.Run("missing binding", func(t *testing.T) {
		f := newFixture(t, []int{10})
		f.items[0].Source = nil
		var wire bytes.Buffer
		_, err := NewWriter(&wire, f.items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		assert.IsType(t, ItemConfigError{}, err)
	})
}

func TestBindings(t *testing.T) {
	t.Run("closed on finish", func(t *testing.T) {
		body := []byte("close me when finished")
		src := &mock.CloseReader{R: bytes.NewReader(body)}
		var id ItemID
		id[0] = 1
		items := []*Item{{
			ID:             id,
			CipherName:     "ChaCha20",
			KeySize:        32,
			NonceSize:      8,
			MAC:            MACHMACSHA256,
			ExternalLength: int64(len(body)),
			Source:         src,
		}}
		preKeys := map[ItemID][]byte{id: bytes.Repeat([]byte{7}, 32)}

		var wire bytes.Buffer
		w, err := NewWriter(&wire, items, preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		require.NoError(t, err)
		require.NoError(t, w.Execute())
		assert.True(t, src.Closed)
	})

	t.Run("write failure surfaces", func(t *testing.T) {
		f := newFixture(t, []int{64})
		w, err := NewWriter(mock.ErrorWriter{}, f.items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		require.NoError(t, err)
		assert.Error(t, w.Execute())
	})
}

func TestScheduleContract(t *testing.T) {
	t.Run("operations after completion rejected", func(t *testing.T) {
		f := newFixture(t, []int{32})
		var wire bytes.Buffer
		w, err := NewWriter(&wire, f.items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		require.NoError(t, err)
		require.NoError(t, w.Execute())

		_, err = w.NextSource()
		assert.IsType(t, SessionCompleteError{}, err)
		err = w.ExecuteOperation(0)
		assert.IsType(t, ItemCompletedError{}, err)
	})

	t.Run("out of range index rejected", func(t *testing.T) {
		f := newFixture(t, []int{32})
		var wire bytes.Buffer
		w, err := NewWriter(&wire, f.items, f.preKeys, Config{Scheme: SchemeSimple, Seed: []byte("s")})
		require.NoError(t, err)
		assert.IsType(t, UnknownItemIndexError(0), w.ExecuteOperation(5))
	})
}
