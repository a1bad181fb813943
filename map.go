package psmap

// MergeThreshold is the default maximum length of the unsorted suffix.
// Once an insertion pushes the suffix past this length, the suffix is
// sorted and merged into the sorted prefix.
const MergeThreshold = 128

// Entry is a single id/value pair stored in a Map.
type Entry[T any] struct {
	ID    int
	Value T
}

// Map associates small integer IDs with values of type T.
//
// Entries live in one contiguous slice split into a sorted prefix
// [0, sorted) and an unsorted suffix [sorted, Len()). Insertions append to the
// suffix; when the suffix grows past the merge threshold it is sorted and
// merged into the prefix. Lookups binary search the prefix and scan the
// suffix, so every operation costs O(log n + threshold).
//
// The zero value is an empty map ready to use. A Map is not safe for
// concurrent use; a single owner must serialize all access, including
// iteration.
type Map[T any] struct {
	entries []Entry[T]
	sorted  int
	scratch []Entry[T]
	opts    *options
}

// New creates an empty Map configured with opts.
func New[T any](opts ...Option) *Map[T] {
	o := applyOptions(opts)
	m := &Map[T]{opts: o}
	if o.capacity > 0 {
		m.entries = make([]Entry[T], 0, o.capacity)
	}
	return m
}

func (m *Map[T]) options() *options {
	if m.opts == nil {
		m.opts = defaultOptions()
	}
	return m.opts
}

func (m *Map[T]) threshold() int {
	return m.options().mergeThreshold
}

// Len returns the number of entries.
func (m *Map[T]) Len() int { return len(m.entries) }

// SortedLen returns the length of the sorted prefix.
func (m *Map[T]) SortedLen() int { return m.sorted }

// unsortedLen returns the length of the unsorted suffix.
func (m *Map[T]) unsortedLen() int { return len(m.entries) - m.sorted }

// Has reports whether id is present.
func (m *Map[T]) Has(id int) bool { return m.lookup(id) >= 0 }

// Get returns the value stored for id, or the zero value of T if id is
// absent. Use Has or Lookup to tell an absent id from a stored zero value.
func (m *Map[T]) Get(id int) T {
	v, _ := m.Lookup(id)
	return v
}

// Lookup returns the value stored for id and whether it was present.
func (m *Map[T]) Lookup(id int) (T, bool) {
	if i := m.lookup(id); i >= 0 {
		return m.entries[i].Value, true
	}
	var zero T
	return zero, false
}

// Set overwrites the value of an existing id. Absent ids are ignored; Set
// never inserts.
func (m *Map[T]) Set(id int, v T) {
	_ = m.TrySet(id, v)
}

// TrySet is like Set but returns ErrNotFound if id is absent.
func (m *Map[T]) TrySet(id int, v T) error {
	i := m.lookup(id)
	if i < 0 {
		return ErrNotFound
	}
	m.entries[i].Value = v
	return nil
}

// Add inserts id with value v. If id is already present the map is left
// unchanged; the first value written wins.
func (m *Map[T]) Add(id int, v T) {
	_ = m.TryAdd(id, v)
}

// AddID inserts id with the zero value of T.
func (m *Map[T]) AddID(id int) {
	var zero T
	_ = m.TryAdd(id, zero)
}

// TryAdd is like Add but returns ErrExists if id is already present.
func (m *Map[T]) TryAdd(id int, v T) error {
	if m.lookup(id) >= 0 {
		return ErrExists
	}
	m.entries = append(m.entries, Entry[T]{ID: id, Value: v})
	m.mergeAuto()
	return nil
}

// Remove deletes id. Absent ids are ignored.
func (m *Map[T]) Remove(id int) {
	_ = m.TryRemove(id)
}

// TryRemove is like Remove but returns ErrNotFound if id is absent.
func (m *Map[T]) TryRemove(id int) error {
	i := m.lookup(id)
	if i < 0 {
		return ErrNotFound
	}
	m.removeAt(i)
	return nil
}

// Clear removes all entries and resets the sorted prefix. The backing
// storage is retained for reuse.
func (m *Map[T]) Clear() {
	clear(m.entries)
	m.entries = m.entries[:0]
	m.sorted = 0
}

// Grow reserves space for at least n more entries.
func (m *Map[T]) Grow(n int) {
	if n <= 0 {
		return
	}
	if cap(m.entries)-len(m.entries) < n {
		grown := make([]Entry[T], len(m.entries), len(m.entries)+n)
		copy(grown, m.entries)
		m.entries = grown
	}
}

// Compact sorts and merges the unsorted suffix regardless of its length.
// Afterwards iteration yields ids in ascending order.
func (m *Map[T]) Compact() {
	if m.unsortedLen() == 0 {
		return
	}
	m.merge()
}

// Clone returns an independent copy of m with the same physical layout
// and configuration. Values are copied shallowly.
func (m *Map[T]) Clone() *Map[T] {
	c := &Map[T]{
		entries: make([]Entry[T], len(m.entries)),
		sorted:  m.sorted,
		opts:    m.opts,
	}
	copy(c.entries, m.entries)
	return c
}
