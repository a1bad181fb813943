// Package conv provides checked integer conversions.
//
// Map ids are Go ints while roaring bitmaps and the snapshot header use
// fixed-width types, so crossings between the two go through here.
package conv
