package psmap

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/psmap/codec"
	"github.com/hupe1980/psmap/internal/compress"
	"github.com/hupe1980/psmap/internal/conv"
	"github.com/hupe1980/psmap/internal/hash"
)

// Snapshot layout (little endian):
//
//	magic "PSMP" | version u8 | compression u8 | codec name len u8 | codec name
//	sorted uvarint | count uvarint | block len u32 | block crc32c u32 | block
//
// The block is a compress frame whose payload holds count entries, each
// encoded as zigzag varint id | uvarint value len | value bytes, in the
// physical order of the map.
const (
	snapshotMagic   = "PSMP"
	snapshotVersion = 1
	fixedHeaderSize = len(snapshotMagic) + 3
)

// WriteTo writes a snapshot of m using the default codec and compression.
// It implements io.WriterTo.
func (m *Map[T]) WriteTo(w io.Writer) (int64, error) {
	return m.Encode(w)
}

// Encode writes a snapshot of m to w. The snapshot preserves the physical
// layout, including the sorted prefix.
func (m *Map[T]) Encode(w io.Writer, opts ...SnapshotOption) (int64, error) {
	o := applySnapshotOptions(opts)
	start := time.Now()
	n, err := m.encode(w, &o)
	o.metrics.RecordSnapshot(len(m.entries), int(n), time.Since(start), err)
	return n, err
}

func (m *Map[T]) encode(w io.Writer, o *snapshotOptions) (int64, error) {
	if !o.compression.Valid() {
		return 0, fmt.Errorf("psmap: encode snapshot: %w: %d", compress.ErrUnknownType, o.compression)
	}
	name := o.codec.Name()
	if len(name) == 0 || len(name) > math.MaxUint8 {
		return 0, fmt.Errorf("psmap: encode snapshot: invalid codec name %q", name)
	}

	appender, _ := o.codec.(codec.Appender)
	var (
		payload []byte
		value   []byte
		err     error
	)
	for _, e := range m.entries {
		if appender != nil {
			value, err = appender.Append(value[:0], e.Value)
		} else {
			value, err = o.codec.Marshal(e.Value)
		}
		if err != nil {
			return 0, fmt.Errorf("psmap: encode value for id %d: %w", e.ID, err)
		}
		payload = binary.AppendVarint(payload, int64(e.ID))
		payload = binary.AppendUvarint(payload, uint64(len(value)))
		payload = append(payload, value...)
	}

	block, err := compress.Block(payload, o.compression)
	if err != nil {
		return 0, fmt.Errorf("psmap: encode snapshot: %w", err)
	}
	blockLen, err := conv.IntToUint32(len(block))
	if err != nil {
		return 0, fmt.Errorf("psmap: encode snapshot: %w: %w", compress.ErrTooLarge, err)
	}

	hdr := make([]byte, 0, fixedHeaderSize+len(name)+2*binary.MaxVarintLen64+8)
	hdr = append(hdr, snapshotMagic...)
	hdr = append(hdr, snapshotVersion, byte(o.compression), byte(len(name)))
	hdr = append(hdr, name...)
	hdr = binary.AppendUvarint(hdr, uint64(m.sorted))
	hdr = binary.AppendUvarint(hdr, uint64(len(m.entries)))
	hdr = binary.LittleEndian.AppendUint32(hdr, blockLen)
	hdr = binary.LittleEndian.AppendUint32(hdr, hash.CRC32C(block))

	var written int64
	n, err := w.Write(hdr)
	written += int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(block)
	written += int64(n)
	return written, err
}

// Decode reads a snapshot written by Encode. Values are decoded with the
// codec named in the snapshot header.
//
// If r does not implement io.ByteReader it is wrapped in a bufio.Reader,
// which may consume bytes past the end of the snapshot.
func Decode[T any](r io.Reader, opts ...SnapshotOption) (*Map[T], error) {
	o := applySnapshotOptions(opts)
	start := time.Now()
	cr := &countingReader{r: byteReader(r)}
	m, err := decode[T](cr, &o)
	entries := 0
	if m != nil {
		entries = m.Len()
	}
	o.metrics.RecordSnapshot(entries, int(cr.n), time.Since(start), err)
	return m, err
}

func decode[T any](r *countingReader, o *snapshotOptions) (*Map[T], error) {
	fixed := make([]byte, fixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, corruptf(err, "read header")
	}
	if string(fixed[:len(snapshotMagic)]) != snapshotMagic {
		return nil, corruptf(nil, "bad magic %q", fixed[:len(snapshotMagic)])
	}
	if v := fixed[4]; v != snapshotVersion {
		return nil, corruptf(nil, "unsupported version %d", v)
	}
	comp := Compression(fixed[5])
	if !comp.Valid() {
		return nil, corruptf(nil, "unknown compression %d", fixed[5])
	}

	name := make([]byte, fixed[6])
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, corruptf(err, "read codec name")
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	sorted, err := readLength(r)
	if err != nil {
		return nil, corruptf(err, "read sorted length")
	}
	count, err := readLength(r)
	if err != nil {
		return nil, corruptf(err, "read entry count")
	}
	if sorted > count {
		return nil, corruptf(nil, "sorted length %d exceeds count %d", sorted, count)
	}

	var sizes [8]byte
	if _, err := io.ReadFull(r, sizes[:]); err != nil {
		return nil, corruptf(err, "read block header")
	}
	blockLen := binary.LittleEndian.Uint32(sizes[0:])
	checksum := binary.LittleEndian.Uint32(sizes[4:])

	h := hash.NewCRC32C()
	block, err := io.ReadAll(io.TeeReader(io.LimitReader(r, int64(blockLen)), h))
	if err != nil {
		return nil, corruptf(err, "read block")
	}
	if uint64(len(block)) != uint64(blockLen) {
		return nil, corruptf(io.ErrUnexpectedEOF, "block truncated at %d of %d bytes", len(block), blockLen)
	}
	if h.Sum32() != checksum {
		return nil, ErrChecksumMismatch
	}

	payload, err := compress.Unblock(block, comp, o.maxPayloadSize)
	if err != nil {
		return nil, corruptf(err, "decompress payload")
	}
	// Every entry takes at least two bytes, which bounds the allocation below.
	if count > len(payload)/2 {
		return nil, corruptf(nil, "entry count %d exceeds payload size %d", count, len(payload))
	}

	m := New[T](o.mapOpts...)
	m.entries = slices.Grow(m.entries, count)
	for i := range count {
		raw, n := binary.Varint(payload)
		if n <= 0 {
			return nil, corruptf(nil, "entry %d: bad id", i)
		}
		id, err := conv.Int64ToInt(raw)
		if err != nil {
			return nil, corruptf(err, "entry %d: bad id", i)
		}
		payload = payload[n:]

		size, n := binary.Uvarint(payload)
		if n <= 0 || size > uint64(len(payload)-n) {
			return nil, corruptf(nil, "entry %d: bad value length", i)
		}
		payload = payload[n:]

		var v T
		if err := c.Unmarshal(payload[:size], &v); err != nil {
			return nil, corruptf(err, "entry %d: decode value for id %d", i, id)
		}
		payload = payload[size:]

		m.entries = append(m.entries, Entry[T]{ID: id, Value: v})
	}
	if len(payload) != 0 {
		return nil, corruptf(nil, "%d trailing payload bytes", len(payload))
	}

	m.sorted = sorted
	if err := m.validate(); err != nil {
		return nil, err
	}
	// A snapshot written with a larger threshold may carry a longer suffix.
	m.mergeAuto()
	return m, nil
}

// validate checks that the sorted prefix is strictly ascending and that
// no id repeats.
func (m *Map[T]) validate() error {
	for i := 1; i < m.sorted; i++ {
		if m.entries[i-1].ID >= m.entries[i].ID {
			return corruptf(nil, "sorted prefix out of order at index %d", i)
		}
	}
	ids := make([]int, len(m.entries))
	for i, e := range m.entries {
		ids[i] = e.ID
	}
	slices.Sort(ids)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] == ids[i] {
			return corruptf(nil, "duplicate id %d", ids[i])
		}
	}
	return nil
}

// readLength reads a uvarint that must fit in an int.
func readLength(r io.ByteReader) (int, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	return conv.Uint64ToInt(v)
}

type readByteReader interface {
	io.Reader
	io.ByteReader
}

func byteReader(r io.Reader) readByteReader {
	if br, ok := r.(readByteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// countingReader tracks the bytes consumed from the snapshot.
type countingReader struct {
	r readByteReader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}
