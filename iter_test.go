package psmap

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIter_PhysicalOrder(t *testing.T) {
	m := New[string]()
	m.Add(5, "a")
	m.Add(1, "b")
	m.Add(9, "c")

	assert.Equal(t, []Entry[string]{{5, "a"}, {1, "b"}, {9, "c"}}, slices.Collect(m.Entries()))
	assert.Equal(t, []int{5, 1, 9}, slices.Collect(m.Keys()))
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(m.Values()))
	assert.Equal(t, map[int]string{5: "a", 1: "b", 9: "c"}, maps.Collect(m.All()))
}

func TestIter_Restartable(t *testing.T) {
	m := New[int]()
	for id := range 5 {
		m.Add(id, id)
	}

	keys := m.Keys()
	assert.Equal(t, slices.Collect(keys), slices.Collect(keys))
}

func TestIter_ReflectsStateAtRangeTime(t *testing.T) {
	m := New[int]()
	m.Add(1, 1)

	keys := m.Keys()
	m.Add(2, 2)

	assert.Equal(t, []int{1, 2}, slices.Collect(keys))
}

func TestIter_EarlyBreak(t *testing.T) {
	m := New[int]()
	for id := range 10 {
		m.Add(id, id)
	}

	count := 0
	for range m.Entries() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)

	for id := range m.Keys() {
		if id == 4 {
			break
		}
	}
	for v := range m.Values() {
		if v == 4 {
			break
		}
	}
	for id := range m.All() {
		if id == 4 {
			break
		}
	}
}

func TestIter_Empty(t *testing.T) {
	var m Map[int]
	assert.Empty(t, slices.Collect(m.Keys()))
	assert.Empty(t, slices.Collect(m.Values()))
	assert.Empty(t, slices.Collect(m.Entries()))
}
