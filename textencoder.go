package heatshrink

import "fmt"

// AppendText appends a human-readable representation of the LZ77
// compression of src to dst. Matches are replaced with <Length,Distance>
// symbols.
func AppendText(dst []byte, src []byte, matches []Match) []byte {
	pos := 0
	for _, m := range matches {
		if m.Unmatched > 0 {
			dst = append(dst, src[pos:pos+m.Unmatched]...)
			pos += m.Unmatched
		}
		if m.Length > 0 {
			dst = append(dst, fmt.Sprintf("<%d,%d>", m.Length, m.Distance)...)
			pos += m.Length
		}
	}
	if pos < len(src) {
		dst = append(dst, src[pos:]...)
	}
	return dst
}
