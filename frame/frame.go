// Package frame wraps heatshrink streams in a minimal container that
// records the decoded length and an xxHash32 checksum of the data.
//
// A heatshrink stream cannot tell a complete stream from a truncated one,
// and it has no integrity check. A frame adds both:
//
//	uvarint   decoded length
//	uvarint   encoded length
//	uint32    xxHash32 of the decoded data (seed 0), little-endian
//	[]byte    heatshrink stream
//
// Like the stream itself, a frame does not record its Config.
package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/andybalholm/heatshrink"
	"github.com/pierrec/xxHash/xxHash32"
)

// Append appends a frame holding src, compressed with cfg, to dst.
func Append(dst, src []byte, cfg heatshrink.Config) ([]byte, error) {
	scratch := make([]byte, heatshrink.MaxEncodedLen(len(src)))
	return appendFrame(dst, scratch, src, nil, nil, cfg)
}

// appendFrame compresses src into scratch, which must hold at least
// MaxEncodedLen(len(src)) bytes, and appends the frame to dst. If mf is
// not nil, it is used to find matches, with matches as the buffer for
// them.
func appendFrame(dst, scratch, src []byte, mf heatshrink.MatchFinder, matches []heatshrink.Match, cfg heatshrink.Config) ([]byte, error) {
	var body []byte
	var err error
	if mf == nil {
		body, err = heatshrink.Encode(scratch, src, cfg)
	} else {
		matches = mf.FindMatches(matches[:0], src)
		body, err = heatshrink.EncodeMatches(scratch, src, matches, cfg)
	}
	if err != nil {
		return dst, fmt.Errorf("frame: %w", err)
	}

	dst = binary.AppendUvarint(dst, uint64(len(src)))
	dst = binary.AppendUvarint(dst, uint64(len(body)))
	dst = binary.LittleEndian.AppendUint32(dst, xxHash32.Checksum(src, 0))
	return append(dst, body...), nil
}

type header struct {
	decodedLen int
	encodedLen int
	checksum   uint32
}

// parseHeader reads a frame header from the start of src and returns it
// with the number of bytes it occupies.
func parseHeader(src []byte) (h header, n int, err error) {
	decodedLen, k := binary.Uvarint(src)
	if k <= 0 {
		return h, 0, varintError(k)
	}
	n += k
	encodedLen, k := binary.Uvarint(src[n:])
	if k <= 0 {
		return h, 0, varintError(k)
	}
	n += k
	if len(src)-n < 4 {
		return h, 0, ErrShortFrame
	}
	h.checksum = binary.LittleEndian.Uint32(src[n:])
	n += 4

	if decodedLen > uint64(maxInt) || encodedLen > uint64(maxInt) {
		return h, 0, ErrCorrupt
	}
	h.decodedLen = int(decodedLen)
	h.encodedLen = int(encodedLen)
	return h, n, nil
}

const maxInt = int(^uint(0) >> 1)

func varintError(k int) error {
	if k == 0 {
		return ErrShortFrame
	}
	return ErrCorrupt
}

// check reports whether the header is consistent with cfg: a stream of
// encodedLen bytes cannot produce more than maxDecodedLen bytes.
func (h header) check(cfg heatshrink.Config) error {
	if h.encodedLen > heatshrink.MaxEncodedLen(h.decodedLen) {
		return ErrCorrupt
	}
	if h.decodedLen > maxDecodedLen(h.encodedLen, cfg) {
		return ErrCorrupt
	}
	return nil
}

// maxDecodedLen returns the most data a stream of n bytes can decode to:
// as many tokens as fit in n bytes, each copying the longest length.
func maxDecodedLen(n int, cfg heatshrink.Config) int {
	tokenBits := 1 + int(cfg.Window()) + int(cfg.Lookahead())
	if tokenBits > 9 {
		tokenBits = 9
	}
	tokens := n / tokenBits * 8
	if tokens > maxInt/cfg.LookaheadSize()-8 {
		return maxInt
	}
	return (tokens + 8) * cfg.LookaheadSize()
}

// Decode decodes the frame at the start of src, and returns the decoded
// data and the number of bytes of src that the frame occupied. The data
// is written to dst if it fits; otherwise a new buffer is allocated.
func Decode(dst, src []byte, cfg heatshrink.Config) (out []byte, n int, err error) {
	h, n, err := parseHeader(src)
	if err != nil {
		return nil, 0, err
	}
	if err := h.check(cfg); err != nil {
		return nil, 0, err
	}
	if len(src)-n < h.encodedLen {
		return nil, 0, ErrShortFrame
	}
	body := src[n : n+h.encodedLen]
	n += h.encodedLen

	if cap(dst) < h.decodedLen {
		dst = make([]byte, h.decodedLen)
	}
	out, err = decodeBody(dst[:h.decodedLen], body, h, cfg)
	if err != nil {
		return nil, 0, err
	}
	return out, n, nil
}

// decodeBody decodes a frame's stream into dst, which has exactly the
// decoded length, and verifies it against the header.
func decodeBody(dst, body []byte, h header, cfg heatshrink.Config) ([]byte, error) {
	out, err := heatshrink.Decode(dst, body, cfg)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	if len(out) != h.decodedLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrLength, len(out), h.decodedLen)
	}
	if sum := xxHash32.Checksum(out, 0); sum != h.checksum {
		return nil, fmt.Errorf("%w: got %#08x, want %#08x", ErrChecksum, sum, h.checksum)
	}
	return out, nil
}
