package psmap

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/psmap/internal/conv"
)

// Set is a membership set of ids backed by a Map with empty values.
//
// Like Map, the zero value is ready to use and a Set is not safe for
// concurrent use.
type Set struct {
	m Map[struct{}]
}

// NewSet creates an empty Set configured with opts.
func NewSet(opts ...Option) *Set {
	return &Set{m: *New[struct{}](opts...)}
}

// SetFromBitmap creates a Set holding every id in bm.
func SetFromBitmap(bm *roaring.Bitmap, opts ...Option) *Set {
	s := NewSet(opts...)
	s.AddBitmap(bm)
	return s
}

// Len returns the number of ids.
func (s *Set) Len() int { return s.m.Len() }

// Has reports whether id is a member.
func (s *Set) Has(id int) bool { return s.m.Has(id) }

// Add inserts id. Adding a member is a no-op.
func (s *Set) Add(id int) { s.m.AddID(id) }

// Remove deletes id. Removing a non-member is a no-op.
func (s *Set) Remove(id int) { s.m.Remove(id) }

// Clear removes all ids.
func (s *Set) Clear() { s.m.Clear() }

// Compact sorts the set so IDs yields ascending order.
func (s *Set) Compact() { s.m.Compact() }

// IDs returns a sequence over the members in physical order. The sequence
// is invalidated by any mutation of s.
func (s *Set) IDs() iter.Seq[int] { return s.m.Keys() }

// AddBitmap inserts every id in bm.
func (s *Set) AddBitmap(bm *roaring.Bitmap) { s.m.AddBitmap(bm, struct{}{}) }

// Bitmap returns the members as a roaring bitmap.
func (s *Set) Bitmap() (*roaring.Bitmap, error) { return s.m.KeyBitmap() }

// AddBitmap inserts every id in bm with value v. Ids already present keep
// their value.
func (m *Map[T]) AddBitmap(bm *roaring.Bitmap, v T) {
	if bm == nil {
		return
	}
	// At least cardinality - Len() ids are new; overlapping ids need no room.
	if n := int(bm.GetCardinality()) - m.Len(); n > 0 {
		m.Grow(n)
	}
	it := bm.Iterator()
	for it.HasNext() {
		m.Add(int(it.Next()), v)
	}
}

// KeyBitmap returns the ids of m as a roaring bitmap. It fails with
// ErrIDOutOfRange if an id is negative or exceeds math.MaxUint32.
func (m *Map[T]) KeyBitmap() (*roaring.Bitmap, error) {
	bm := roaring.New()
	for _, e := range m.entries {
		id, err := conv.IntToUint32(e.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIDOutOfRange, err)
		}
		bm.Add(id)
	}
	return bm, nil
}
