package heatshrink

// EncodeMatches writes src to dst as a heatshrink stream, using the
// matches found by a MatchFinder, and returns the part of dst that was
// written. The matches must cover src in order, as FindMatches produces
// them.
//
// Matches longer than the lookahead size are split into several
// back-references. Matches (or pieces of them) that are too short to save
// space, and matches whose distance is outside the window, are written as
// literals instead. Like Encode, EncodeMatches never allocates, and it
// returns ErrOutputFull if dst is too small.
func EncodeMatches(dst, src []byte, matches []Match, cfg Config) ([]byte, error) {
	e := encoder{
		cfg: cfg.normalize(),
		src: src,
		bw:  bitWriter{dst: dst},
	}

	pos := 0
	for _, m := range matches {
		if err := e.emitLiterals(pos, pos+m.Unmatched); err != nil {
			return nil, err
		}
		pos += m.Unmatched
		if m.Length > 0 {
			if err := e.emitMatch(pos, m.Length, m.Distance); err != nil {
				return nil, err
			}
			pos += m.Length
		}
	}
	if err := e.emitLiterals(pos, len(src)); err != nil {
		return nil, err
	}

	if err := e.finish(); err != nil {
		return nil, err
	}
	return e.bw.dst[:e.bw.pos], nil
}

func (e *encoder) emitLiterals(start, end int) error {
	for _, c := range e.src[start:end] {
		if err := e.emitLiteral(c); err != nil {
			return err
		}
	}
	return nil
}

// emitMatch writes the length bytes at pos, which repeat the data distance
// bytes earlier.
func (e *encoder) emitMatch(pos, length, distance int) error {
	if distance < 1 || distance > e.cfg.WindowSize() || distance > pos {
		return e.emitLiterals(pos, pos+length)
	}

	threshold := e.cfg.threshold()
	maxLength := e.cfg.LookaheadSize()
	for length > 0 {
		n := length
		if n > maxLength {
			n = maxLength
		}
		var err error
		if n > threshold {
			err = e.emitBackref(distance, n)
		} else {
			err = e.emitLiterals(pos, pos+n)
		}
		if err != nil {
			return err
		}
		pos += n
		length -= n
	}
	return nil
}
