package psmap

import "slices"

// RemoveKind identifies which erase path a removal took.
type RemoveKind uint8

const (
	// RemoveShift is an order-preserving erase deep in the sorted prefix.
	RemoveShift RemoveKind = iota
	// RemoveSwap overwrites the slot with the last entry.
	RemoveSwap
)

func (k RemoveKind) String() string {
	switch k {
	case RemoveShift:
		return "shift"
	case RemoveSwap:
		return "swap"
	default:
		return "unknown"
	}
}

// eraseBound returns the index below which a removal must preserve order.
// Entries at or above it lie within threshold slots of the tail, so a swap
// there can only disturb a tail that fits in the unsorted suffix. The bound
// is negative when n < threshold.
func eraseBound(n, threshold int) int {
	return n - threshold
}

// removeKind picks the erase path for index i in a map of length n.
func removeKind(i, n, threshold int) RemoveKind {
	if i < eraseBound(n, threshold) {
		return RemoveShift
	}
	return RemoveSwap
}

func (m *Map[T]) removeAt(i int) {
	kind := removeKind(i, len(m.entries), m.threshold())
	switch kind {
	case RemoveShift:
		m.removeShift(i)
	default:
		m.removeSwap(i)
	}
	m.options().metrics.RecordRemove(kind)
}

// removeShift deletes entries[i] and shifts the rest left by one.
func (m *Map[T]) removeShift(i int) {
	m.entries = slices.Delete(m.entries, i, i+1)
	if i < m.sorted {
		m.sorted--
	}
}

// removeSwap moves the last entry into slot i and shrinks by one. The slot
// may now be out of order, so the sorted prefix is cut back to i.
func (m *Map[T]) removeSwap(i int) {
	last := len(m.entries) - 1
	m.sorted = min(m.sorted, i)
	m.entries[i] = m.entries[last]
	var zero Entry[T]
	m.entries[last] = zero
	m.entries = m.entries[:last]
}
