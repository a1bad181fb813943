// Package compress implements the block compression used by snapshots.
//
// A block is framed as:
//
//	[UncompressedSize uint32][CompressedSize uint32][Data...]
//
// CompressedSize == 0 means Data is stored as is, either because no
// compression was requested or because compression did not pay off.
package compress
