package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used.
type Type uint8

const (
	// None indicates no compression.
	None Type = 0
	// LZ4 indicates LZ4 block compression (fast, good for hot data).
	LZ4 Type = 1
	// ZSTD indicates ZSTD block compression (better ratio, good for cold data).
	ZSTD Type = 2
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compress.Type(%d)", uint8(t))
	}
}

// Valid reports whether t is a known algorithm.
func (t Type) Valid() bool {
	return t <= ZSTD
}

// HeaderSize is the size of the block header in bytes.
const HeaderSize = 8

// MaxLZ4Ratio is the largest expansion an LZ4 block can encode: each
// compressed byte contributes at most 255 bytes of output.
const MaxLZ4Ratio = 255

var (
	// ErrShortBlock is returned when a block is smaller than its header claims.
	ErrShortBlock = errors.New("compress: block too small")
	// ErrSizeMismatch is returned when decompression yields an unexpected length.
	ErrSizeMismatch = errors.New("compress: decompressed size mismatch")
	// ErrUnknownType is returned for an unknown compression type.
	ErrUnknownType = errors.New("compress: unknown type")
	// ErrTooLarge is returned when a block exceeds the 32-bit size fields.
	ErrTooLarge = errors.New("compress: block too large")
	// ErrSizeLimit is returned when a block declares an uncompressed size
	// above the caller's limit or beyond what its compressed body can hold.
	ErrSizeLimit = errors.New("compress: declared size exceeds limit")
)

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(math.MaxUint32),
	)
}

// Block compresses data with t and frames it with a header.
// If compression does not shrink data below 90% it is stored uncompressed.
func Block(data []byte, t Type) ([]byte, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return nil, ErrTooLarge
	}

	var (
		compressed []byte
		err        error
	)

	switch t {
	case None:
	case LZ4:
		compressed, err = blockLZ4(data)
	case ZSTD:
		compressed, err = blockZSTD(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		return frame(data, 0), nil
	}
	return frame(compressed, len(data)), nil
}

func frame(payload []byte, uncompressed int) []byte {
	out := make([]byte, HeaderSize+len(payload))
	if uncompressed == 0 {
		binary.LittleEndian.PutUint32(out[0:], uint32(len(payload)))
		binary.LittleEndian.PutUint32(out[4:], 0)
	} else {
		binary.LittleEndian.PutUint32(out[0:], uint32(uncompressed))
		binary.LittleEndian.PutUint32(out[4:], uint32(len(payload)))
	}
	copy(out[HeaderSize:], payload)
	return out
}

func blockLZ4(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

func blockZSTD(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, err
	}
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

// Unblock reverses Block. t must be the type the block was written with.
//
// The uncompressed size in the header is untrusted: it is rejected when it
// exceeds maxSize (if maxSize > 0) or, for LZ4, MaxLZ4Ratio times the
// compressed size. ZSTD output is streamed and never grows past the
// declared size, so memory follows the bytes actually produced.
func Unblock(data []byte, t Type, maxSize int) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, ErrShortBlock
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])
	body := data[HeaderSize:]

	if maxSize > 0 && uint64(uncompressedSize) > uint64(maxSize) {
		return nil, fmt.Errorf("%w: %d > %d", ErrSizeLimit, uncompressedSize, maxSize)
	}

	if compressedSize == 0 {
		if uint64(len(body)) < uint64(uncompressedSize) {
			return nil, ErrShortBlock
		}
		return body[:uncompressedSize], nil
	}

	if uint64(len(body)) < uint64(compressedSize) {
		return nil, ErrShortBlock
	}
	body = body[:compressedSize]

	switch t {
	case LZ4:
		if uint64(uncompressedSize) > MaxLZ4Ratio*uint64(compressedSize) {
			return nil, fmt.Errorf("%w: %d bytes from %d compressed", ErrSizeLimit, uncompressedSize, compressedSize)
		}
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(body, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, ErrSizeMismatch
		}
		return result, nil

	case ZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)

		if err := dec.Reset(bytes.NewReader(body)); err != nil {
			return nil, err
		}
		// One byte past the declared size detects overlong output.
		decoded, err := io.ReadAll(io.LimitReader(dec, int64(uncompressedSize)+1))
		if err != nil {
			return nil, err
		}
		if uint64(len(decoded)) != uint64(uncompressedSize) {
			return nil, ErrSizeMismatch
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
}
