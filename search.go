package heatshrink

// WindowSearch is an implementation of the MatchFinder interface that
// compares every position in the window, the same way Encode does. Its
// matches, passed to EncodeMatches, produce exactly the stream that
// Encode produces.
type WindowSearch struct {
	Config Config

	parser  GreedyParser
	history []byte
}

func (q *WindowSearch) Reset() {
	q.history = nil
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
func (q *WindowSearch) FindMatches(dst []Match, src []byte) []Match {
	q.history = src
	q.parser.MinLength = q.Config.threshold() + 1
	dst = q.parser.Parse(dst, q, 0, len(src))
	q.history = nil
	return dst
}

// Search appends the longest match at pos, if there is one. Of several
// equally long matches, it chooses the closest.
func (q *WindowSearch) Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch {
	src := q.history[:max]
	start := pos - q.Config.WindowSize()
	if start < 0 {
		start = 0
	}
	limit := q.Config.LookaheadSize()
	if rest := len(src) - pos; rest < limit {
		limit = rest
	}

	var best AbsoluteMatch
	for candidate := start; candidate < pos; candidate++ {
		if n := matchLen(src, candidate, pos, limit); n >= best.End-best.Start {
			best = AbsoluteMatch{
				Start: pos,
				End:   pos + n,
				Match: candidate,
			}
		}
	}
	if best.End == best.Start {
		return dst
	}
	return append(dst, best)
}
