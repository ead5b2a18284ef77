package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLive(t *testing.T) {
	t.Run("fills buffers", func(t *testing.T) {
		s := Live()
		b := make([]byte, 64)
		assert.NoError(t, s.ReadBytes(b))
	})

	t.Run("draws in range", func(t *testing.T) {
		s := Live()
		for i := 0; i < 100; i++ {
			n, err := s.Int(7)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, n, 0)
			assert.Less(t, n, 7)

			r, err := s.IntRange(8, 512)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, r, 8)
			assert.LessOrEqual(t, r, 512)
		}
	})

	t.Run("rejects bad bounds", func(t *testing.T) {
		s := Live()
		_, err := s.Int(0)
		assert.Error(t, err)
		_, err = s.IntRange(10, 5)
		assert.Error(t, err)
	})
}

func TestDeterministic(t *testing.T) {
	t.Run("same seed same draws", func(t *testing.T) {
		a, err := Deterministic([]byte("shared schedule seed"))
		assert.NoError(t, err)
		b, err := Deterministic([]byte("shared schedule seed"))
		assert.NoError(t, err)
		for i := 0; i < 200; i++ {
			x, err := a.Int(13)
			assert.NoError(t, err)
			y, err := b.Int(13)
			assert.NoError(t, err)
			assert.Equal(t, x, y)
		}
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		a, _ := Deterministic([]byte("seed one"))
		b, _ := Deterministic([]byte("seed two"))
		same := true
		for i := 0; i < 32; i++ {
			x, _ := a.Int(1 << 16)
			y, _ := b.Int(1 << 16)
			if x != y {
				same = false
			}
		}
		assert.False(t, same)
	})

	t.Run("empty seed rejected", func(t *testing.T) {
		_, err := Deterministic(nil)
		assert.Error(t, err)
		assert.IsType(t, EmptySeedError{}, err)
	})
}
