// Package heatshrink implements the heatshrink compression format, an LZSS
// variant designed for embedded systems.
//
// A heatshrink stream is a sequence of bit-packed tokens, written
// most-significant bit first:
//   - a literal is a 1 bit followed by the byte;
//   - a back-reference is a 0 bit, then distance-1 in Window bits, then
//     length-1 in Lookahead bits.
//
// The stream carries no header. The Config used to encode it must be
// supplied again to decode it.
//
// Encode and Decode work on caller-supplied buffers and never allocate.
// For other match-finding strategies, a MatchFinder produces an
// intermediate list of matches and EncodeMatches turns it into a stream.
package heatshrink

// A Match is the basic unit of LZ77 compression.
type Match struct {
	Unmatched int // the number of unmatched bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0 at the end of the input
	Distance  int // how far back in the stream to copy from
}

// A MatchFinder performs the LZ77 stage of compression, looking for matches.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and returns dst.
	// Each call treats src as a complete, independent input.
	FindMatches(dst []Match, src []byte) []Match

	// Reset clears any internal state.
	Reset()
}
