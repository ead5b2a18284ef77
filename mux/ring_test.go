package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBuffer(t *testing.T) {
	t.Run("put and take", func(t *testing.T) {
		r := newRingBuffer(8)
		require.NoError(t, r.Put([]byte{1, 2, 3}))
		assert.Equal(t, 3, r.Len())
		assert.Equal(t, []byte{1, 2}, r.Take(2))
		assert.Equal(t, 1, r.Len())
		assert.Equal(t, []byte{3}, r.Take(5))
		assert.Equal(t, 0, r.Len())
	})

	t.Run("wraps around", func(t *testing.T) {
		r := newRingBuffer(4)
		require.NoError(t, r.Put([]byte{1, 2, 3}))
		assert.Equal(t, []byte{1, 2, 3}, r.Take(3))
		require.NoError(t, r.Put([]byte{4, 5, 6}))
		assert.Equal(t, []byte{4, 5, 6}, r.Take(3))
	})

	t.Run("full rejects", func(t *testing.T) {
		r := newRingBuffer(2)
		require.NoError(t, r.Put([]byte{1, 2}))
		err := r.Put([]byte{3})
		assert.IsType(t, RingFullError{}, err)
	})
}
