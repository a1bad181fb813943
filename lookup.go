package psmap

import (
	"cmp"
	"slices"
)

func compareEntries[T any](a, b Entry[T]) int {
	return cmp.Compare(a.ID, b.ID)
}

// lookupSorted binary searches the sorted prefix. It returns -1 if id is
// not in the prefix.
func (m *Map[T]) lookupSorted(id int) int {
	prefix := m.entries[:m.sorted]
	i, found := slices.BinarySearchFunc(prefix, id, func(e Entry[T], id int) int {
		return cmp.Compare(e.ID, id)
	})
	if !found {
		return -1
	}
	return i
}

// lookupUnsorted scans the unsorted suffix. The returned index is absolute.
func (m *Map[T]) lookupUnsorted(id int) int {
	for i := m.sorted; i < len(m.entries); i++ {
		if m.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// lookup returns the index of id, or -1 if absent.
func (m *Map[T]) lookup(id int) int {
	if i := m.lookupSorted(id); i >= 0 {
		return i
	}
	return m.lookupUnsorted(id)
}
