package heatshrink

import (
	"log"
)

// enable encoder debug printing
const debugEncoder = false

// Encode compresses src into dst and returns the part of dst that was
// written. If dst is too small it returns ErrOutputFull; MaxEncodedLen
// gives a size that is always large enough. Encode never allocates.
//
// Matches are found by scanning every position in the window, so the cost
// per input byte is proportional to WindowSize * LookaheadSize.
func Encode(dst, src []byte, cfg Config) ([]byte, error) {
	e := encoder{
		cfg: cfg.normalize(),
		src: src,
		bw:  bitWriter{dst: dst},
	}
	return e.encode()
}

// encoder holds the state for one call to Encode.
type encoder struct {
	cfg Config
	src []byte
	bw  bitWriter
}

func (e *encoder) encode() ([]byte, error) {
	threshold := e.cfg.threshold()
	pos := 0
	for pos < len(e.src) {
		match, length := e.search(pos)
		if length > threshold {
			if err := e.emitBackref(pos-match, length); err != nil {
				return nil, err
			}
			pos += length
		} else {
			if err := e.emitLiteral(e.src[pos]); err != nil {
				return nil, err
			}
			pos++
		}
	}
	if err := e.finish(); err != nil {
		return nil, err
	}
	return e.bw.dst[:e.bw.pos], nil
}

// search returns the start and length of the longest match for the data
// at head, among all positions in the window. Later candidates win ties,
// so of several equally long matches the closest one is chosen.
func (e *encoder) search(head int) (match, length int) {
	start := head - e.cfg.WindowSize()
	if start < 0 {
		start = 0
	}
	limit := e.cfg.LookaheadSize()
	if rest := len(e.src) - head; rest < limit {
		limit = rest
	}
	for pos := start; pos < head; pos++ {
		if n := matchLen(e.src, pos, head, limit); n >= length {
			match, length = pos, n
		}
	}
	return match, length
}

// matchLen returns how many bytes, up to limit, of src[i:] and src[j:]
// are equal. The two ranges may overlap.
func matchLen(src []byte, i, j, limit int) int {
	a := src[i : i+limit]
	b := src[j : j+limit]
	for k := range a {
		if a[k] != b[k] {
			return k
		}
	}
	return limit
}

func (e *encoder) emitLiteral(c byte) error {
	if debugEncoder {
		log.Printf("literal %#02x", c)
	}
	return e.bw.writeBits(9, 0x100|uint32(c))
}

func (e *encoder) emitBackref(distance, length int) error {
	if debugEncoder {
		log.Printf("backref distance=%d length=%d", distance, length)
	}
	if err := e.bw.writeBits(1, 0); err != nil {
		return err
	}
	if err := e.bw.writeBits(uint(e.cfg.window), uint32(distance-1)); err != nil {
		return err
	}
	return e.bw.writeBits(uint(e.cfg.lookahead), uint32(length-1))
}

// finish flushes the last partial byte. When the padding is wide enough
// to hold a whole back-reference token, it starts with a 1 bit, which
// decoders read as a literal tag with too few bits after it, and so as the
// end of the stream.
func (e *encoder) finish() error {
	marker := e.bw.padding() >= 1+uint(e.cfg.window)+uint(e.cfg.lookahead)
	return e.bw.flush(marker)
}
