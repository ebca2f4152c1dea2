package heatshrink

// A bitWriter packs bits most-significant-bit first into a fixed
// destination buffer.
type bitWriter struct {
	dst   []byte
	pos   int    // bytes written to dst
	bits  uint32 // pending bits are the low nbits bits
	nbits uint
}

// writeBits appends the low nb bits of v. It fails with ErrOutputFull as
// soon as a completed byte does not fit in dst.
func (w *bitWriter) writeBits(nb uint, v uint32) error {
	w.bits = w.bits<<nb | v&(1<<nb-1)
	w.nbits += nb
	for w.nbits >= 8 {
		if w.pos >= len(w.dst) {
			return ErrOutputFull
		}
		w.nbits -= 8
		w.dst[w.pos] = byte(w.bits >> w.nbits)
		w.pos++
	}
	return nil
}

// padding returns how many bits flush would add to complete the last byte.
func (w *bitWriter) padding() uint {
	if w.nbits == 0 {
		return 0
	}
	return 8 - w.nbits
}

// flush writes any pending bits as a final byte, with the unused low bits
// cleared. If marker is set, the first padding bit is set to 1.
func (w *bitWriter) flush(marker bool) error {
	if w.nbits == 0 {
		return nil
	}
	if w.pos >= len(w.dst) {
		return ErrOutputFull
	}
	pad := 8 - w.nbits
	b := byte(w.bits << pad)
	if marker {
		b |= 1 << (pad - 1)
	}
	w.dst[w.pos] = b
	w.pos++
	w.nbits = 0
	w.bits = 0
	return nil
}

// A bitReader reads bits most-significant-bit first, tracking an absolute
// bit position in src.
type bitReader struct {
	src []byte
	pos int
}

// remaining returns the number of unread bits.
func (r *bitReader) remaining() int {
	return len(r.src)*8 - r.pos
}

// getBits reads count bits (at most 24) and returns them right-aligned. If
// fewer than count bits remain, ok is false and nothing is consumed.
func (r *bitReader) getBits(count uint) (v uint32, ok bool) {
	if int(count) > r.remaining() {
		return 0, false
	}
	end := r.pos + int(count)
	for i := r.pos >> 3; i<<3 < end; i++ {
		v = v<<8 | uint32(r.src[i])
	}
	// v holds whole bytes from the one containing r.pos through the one
	// containing end-1; drop the bits after end and above count.
	if tail := end & 7; tail != 0 {
		v >>= 8 - uint(tail)
	}
	v &= 1<<count - 1
	r.pos = end
	return v, true
}
