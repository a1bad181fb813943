package psmap

import (
	"slices"
	"time"
)

// mergeAuto merges the unsorted suffix once it exceeds the threshold.
func (m *Map[T]) mergeAuto() {
	if m.unsortedLen() <= m.threshold() {
		return
	}
	m.merge()
}

// merge sorts the unsorted suffix and merges it into the sorted prefix.
// Both runs are already sorted after the first step, so the merge walks
// them back to front, filling the tail of entries from a copy of the
// suffix. Only the suffix is copied; the prefix moves in place.
func (m *Map[T]) merge() {
	start := time.Now()
	unsorted := m.unsortedLen()

	suffix := m.entries[m.sorted:]
	slices.SortFunc(suffix, compareEntries[T])

	m.scratch = append(m.scratch[:0], suffix...)
	mergeBackward(m.entries, m.sorted, m.scratch)
	clear(m.scratch)

	m.sorted = len(m.entries)

	o := m.options()
	o.metrics.RecordMerge(unsorted, len(m.entries), time.Since(start))
	o.logger.LogMerge(unsorted, len(m.entries))
}

// mergeBackward merges dst[:n] with src into dst, where len(dst) == n+len(src).
// Both inputs must be sorted by ID. Ties keep prefix entries first.
func mergeBackward[T any](dst []Entry[T], n int, src []Entry[T]) {
	i, j, k := n-1, len(src)-1, len(dst)-1
	for j >= 0 {
		if i >= 0 && dst[i].ID > src[j].ID {
			dst[k] = dst[i]
			i--
		} else {
			dst[k] = src[j]
			j--
		}
		k--
	}
}
