package cache_test

import (
	"bytes"
	"testing"

	"github.com/klauer/vita/pkg/cache"
	"github.com/klauer/vita/pkg/fitness"
	"github.com/klauer/vita/pkg/genome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sig(b byte) genome.Signature {
	var s genome.Signature
	s[0] = b
	return s
}

func TestNewRoundsUpToPowerOfTwo(t *testing.T) {
	c := cache.New(10)
	assert.Equal(t, 16, c.Len())
	c = cache.New(1)
	assert.Equal(t, 1, c.Len())
}

func TestInsertThenFindSameEpoch(t *testing.T) {
	c := cache.New(64)
	s := sig(1)
	f := fitness.Fitness{1, 2, 3}
	c.Insert(s, f)

	got, ok := c.Find(s)
	require.True(t, ok)
	assert.True(t, got.Equal(f))
}

func TestFindMissReturnsFalse(t *testing.T) {
	c := cache.New(64)
	_, ok := c.Find(sig(9))
	assert.False(t, ok)
}

func TestInsertOverwritesOnCollision(t *testing.T) {
	c := cache.New(1) // single slot, every signature collides
	c.Insert(sig(1), fitness.Fitness{1})
	c.Insert(sig(2), fitness.Fitness{2})

	_, ok := c.Find(sig(1))
	assert.False(t, ok, "first signature must have been evicted")

	got, ok := c.Find(sig(2))
	require.True(t, ok)
	assert.Equal(t, fitness.Fitness{2}, got)
}

func TestClearInvalidatesAllSlots(t *testing.T) {
	c := cache.New(64)
	c.Insert(sig(1), fitness.Fitness{1})
	c.Clear()
	_, ok := c.Find(sig(1))
	assert.False(t, ok)
}

func TestSaveLoadRoundTripPreservesOccupiedEntries(t *testing.T) {
	c := cache.New(64)
	c.Insert(sig(1), fitness.Fitness{1, 2})
	c.Insert(sig(2), fitness.Fitness{3})
	c.Insert(sig(3), fitness.Fitness{})

	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf))

	loaded, err := cache.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Len(), loaded.Len())
	assert.Equal(t, c.Occupied(), loaded.Occupied())

	for _, b := range []byte{1, 2, 3} {
		want, ok := c.Find(sig(b))
		require.True(t, ok)
		got, ok := loaded.Find(sig(b))
		require.True(t, ok)
		assert.True(t, got.Equal(want))
	}
}
