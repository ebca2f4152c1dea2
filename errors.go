package heatshrink

import "errors"

var (
	// ErrSizeRange is returned when a window or lookahead exponent is
	// outside the range MinSize–MaxSize.
	ErrSizeRange = errors.New("heatshrink: size out of range")

	// ErrOutputFull is returned when the destination buffer is too small.
	// The bytes already written to it are not meaningful.
	ErrOutputFull = errors.New("heatshrink: output buffer full")

	// ErrIllegalBackref is returned when a back-reference points before the
	// start of the decoded data.
	ErrIllegalBackref = errors.New("heatshrink: back-reference before start of output")
)
