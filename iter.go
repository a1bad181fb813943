package psmap

import "iter"

// The sequences below are views over the map's storage in physical order:
// the sorted prefix followed by the unsorted suffix. They are lazy and may
// be ranged over any number of times. Mutating the map while a sequence is
// being consumed is a caller error; the results are unspecified.

// Entries returns a sequence over all entries.
func (m *Map[T]) Entries() iter.Seq[Entry[T]] {
	return func(yield func(Entry[T]) bool) {
		for i := 0; i < len(m.entries); i++ {
			if !yield(m.entries[i]) {
				return
			}
		}
	}
}

// Keys returns a sequence over all ids.
func (m *Map[T]) Keys() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < len(m.entries); i++ {
			if !yield(m.entries[i].ID) {
				return
			}
		}
	}
}

// Values returns a sequence over all values.
func (m *Map[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < len(m.entries); i++ {
			if !yield(m.entries[i].Value) {
				return
			}
		}
	}
}

// All returns a sequence of id/value pairs.
func (m *Map[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < len(m.entries); i++ {
			e := m.entries[i]
			if !yield(e.ID, e.Value) {
				return
			}
		}
	}
}
