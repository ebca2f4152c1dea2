package frame

import "errors"

var (
	// ErrShortFrame is returned when the input ends inside a frame.
	ErrShortFrame = errors.New("frame: truncated frame")

	// ErrCorrupt is returned for a frame header that cannot be valid.
	ErrCorrupt = errors.New("frame: corrupt header")

	// ErrLength is returned when a frame decodes to a different length than
	// its header records.
	ErrLength = errors.New("frame: decoded length mismatch")

	// ErrChecksum is returned when the decoded data does not match the
	// frame's checksum.
	ErrChecksum = errors.New("frame: checksum mismatch")

	// ErrTooLarge is returned by a Reader for a frame larger than its
	// MaxBlockSize.
	ErrTooLarge = errors.New("frame: block too large")
)
