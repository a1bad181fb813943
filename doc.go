// Package psmap provides a map from small integer ids to values, tuned for
// workloads dominated by bulk insertion with occasional point lookups and
// removals, such as membership sets and sparse attributes over graph or
// entity id spaces.
//
// # Layout
//
// A Map keeps its entries in one slice split in two regions:
//
//	[ sorted prefix, ascending by id | unsorted suffix, append order ]
//	0                          SortedLen()                       Len()
//
// Add appends to the suffix. When the suffix grows past the merge threshold
// (MergeThreshold, 128 by default) it is sorted and merged into the prefix,
// so sorting costs amortize to O(log threshold) per insertion. Lookups
// binary search the prefix and scan the suffix.
//
// Remove picks one of two paths by a single comparison against
// Len() - threshold. Entries below that bound are erased by shifting the
// rest of the slice left, which keeps the prefix sorted. Entries at or above
// it are swapped with the last entry, and the prefix is cut back to the
// removed index; the cut never makes the suffix longer than the threshold.
//
// # Quick Start
//
//	var m psmap.Map[string]
//	m.Add(5, "a")
//	m.Add(1, "b")
//	m.Add(9, "c")
//
//	m.Get(1)          // "b"
//	m.Has(7)          // false
//	m.Set(7, "x")     // no-op: Set never inserts
//	m.Add(1, "z")     // no-op: first writer wins
//	m.Remove(1)
//
//	for id, v := range m.All() {
//	    fmt.Println(id, v) // physical order, not sorted
//	}
//
// Get returns the zero value for absent ids and Set, Add and Remove ignore
// ids they cannot act on. Lookup, TrySet, TryAdd and TryRemove report those
// cases instead.
//
// # Iteration
//
// Entries, Keys, Values and All return lazy sequences over the current
// storage in physical order. Order is ascending only right after a merge or
// Compact. Mutating the map while ranging over one of them is a caller
// error with unspecified results.
//
// # Concurrency
//
// Maps and Sets are not safe for concurrent use. A single owner must
// serialize all access.
//
// # Snapshots
//
// Encode and Decode write and read a compact binary snapshot (LZ4 or ZSTD
// compressed, CRC32C protected). Save, Load and SaveAll move snapshots
// through a blobstore.Store such as the local filesystem, S3 or MinIO.
package psmap
