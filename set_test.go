package psmap

import (
	"slices"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Basic(t *testing.T) {
	var s Set
	s.Add(3)
	s.Add(1)
	s.Add(3)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(1))
	assert.False(t, s.Has(2))

	s.Remove(1)
	s.Remove(42)
	assert.Equal(t, []int{3}, slices.Collect(s.IDs()))

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestSet_Compact(t *testing.T) {
	s := NewSet()
	for _, id := range []int{8, 2, 6, 4} {
		s.Add(id)
	}
	s.Compact()
	assert.Equal(t, []int{2, 4, 6, 8}, slices.Collect(s.IDs()))
}

func TestSet_BitmapRoundTrip(t *testing.T) {
	bm := roaring.BitmapOf(1, 5, 9, 1000, 70000)
	s := SetFromBitmap(bm, WithMergeThreshold(2))

	assert.Equal(t, 5, s.Len())
	for _, id := range []int{1, 5, 9, 1000, 70000} {
		assert.True(t, s.Has(id))
	}

	out, err := s.Bitmap()
	require.NoError(t, err)
	assert.True(t, bm.Equals(out))
}

func TestSet_AddBitmapMergesWithExisting(t *testing.T) {
	s := NewSet()
	s.Add(5)
	s.Add(7)
	s.AddBitmap(roaring.BitmapOf(1, 5, 9))
	s.AddBitmap(nil)

	assert.Equal(t, 4, s.Len())
}

func TestMap_AddBitmapKeepsExistingValues(t *testing.T) {
	m := New[string]()
	m.Add(2, "old")
	m.AddBitmap(roaring.BitmapOf(1, 2, 3), "new")

	assert.Equal(t, "old", m.Get(2))
	assert.Equal(t, "new", m.Get(1))
	assert.Equal(t, "new", m.Get(3))
}

func TestMap_AddBitmapOverlapDoesNotGrow(t *testing.T) {
	m := New[int]()
	for id := range 100 {
		m.Add(id, id)
	}
	before := cap(m.entries)

	bm := roaring.New()
	bm.AddRange(0, 100)
	m.AddBitmap(bm, -1)

	assert.Equal(t, before, cap(m.entries))
	assert.Equal(t, 100, m.Len())
	assert.Equal(t, 42, m.Get(42))

	bm.AddRange(100, 150)
	m.AddBitmap(bm, -1)
	assert.Equal(t, 150, m.Len())
	assert.Equal(t, -1, m.Get(120))
}

func TestMap_KeyBitmap(t *testing.T) {
	m := New[int]()
	for _, id := range []int{4, 2, 8} {
		m.Add(id, id)
	}

	bm, err := m.KeyBitmap()
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 4, 8}, bm.ToArray())

	m.Add(-1, 0)
	_, err = m.KeyBitmap()
	assert.ErrorIs(t, err, ErrIDOutOfRange)
}
