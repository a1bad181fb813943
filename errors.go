package psmap

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by the Try* accessors when an id is absent.
	ErrNotFound = errors.New("psmap: id not found")

	// ErrExists is returned by TryAdd when an id is already present.
	ErrExists = errors.New("psmap: id already exists")

	// ErrIDOutOfRange is returned when an id cannot be represented in a
	// 32-bit roaring bitmap.
	ErrIDOutOfRange = errors.New("psmap: id out of uint32 range")

	// ErrCorruptSnapshot is returned when a snapshot is malformed or
	// violates the map's ordering and uniqueness rules.
	ErrCorruptSnapshot = errors.New("psmap: corrupt snapshot")

	// ErrChecksumMismatch is returned when a snapshot payload fails its
	// CRC32C check.
	ErrChecksumMismatch = errors.New("psmap: snapshot checksum mismatch")

	// ErrUnknownCodec is returned when a snapshot names a codec that is not
	// built in.
	ErrUnknownCodec = errors.New("psmap: unknown codec")
)

// CorruptionError describes where a snapshot failed validation.
//
// It matches ErrCorruptSnapshot via errors.Is.
type CorruptionError struct {
	Reason string
	cause  error
}

func (e *CorruptionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("psmap: corrupt snapshot: %s: %v", e.Reason, e.cause)
	}
	return "psmap: corrupt snapshot: " + e.Reason
}

func (e *CorruptionError) Unwrap() error { return e.cause }

// Is reports whether target is ErrCorruptSnapshot.
func (e *CorruptionError) Is(target error) bool { return target == ErrCorruptSnapshot }

func corruptf(cause error, format string, args ...any) error {
	return &CorruptionError{Reason: fmt.Sprintf(format, args...), cause: cause}
}
