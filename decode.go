package heatshrink

import (
	"fmt"
	"log"
)

// enable decoder debug printing
const debugDecoder = false

// The states of the decoder. The last three are terminal.
type state uint8

const (
	stateTagBit          state = iota // tag bit
	stateYieldLiteral                 // ready to yield literal byte
	stateBackrefIndexMSB              // most significant bits of index
	stateBackrefIndexLSB              // least significant byte of index
	stateBackrefCountMSB              // most significant bits of count
	stateBackrefCountLSB              // least significant byte of count
	stateYieldBackref                 // ready to yield back-reference
	stateNeedMoreData                 // end of input
	stateOutputFull                   // abort: output buffer full
	stateIllegalBackref               // abort: back-reference before start of output
)

var stateNames = [...]string{
	stateTagBit:          "TagBit",
	stateYieldLiteral:    "YieldLiteral",
	stateBackrefIndexMSB: "BackrefIndexMSB",
	stateBackrefIndexLSB: "BackrefIndexLSB",
	stateBackrefCountMSB: "BackrefCountMSB",
	stateBackrefCountLSB: "BackrefCountLSB",
	stateYieldBackref:    "YieldBackref",
	stateNeedMoreData:    "NeedMoreData",
	stateOutputFull:      "OutputFull",
	stateIllegalBackref:  "IllegalBackref",
}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// A Decoder decompresses heatshrink streams. The zero Decoder uses
// DefaultConfig.
type Decoder struct {
	Config Config

	// ZeroWindow makes back-references that reach before the start of the
	// output copy zero bytes for the missing part instead of failing with
	// ErrIllegalBackref. The C heatshrink encoder starts with a
	// zero-filled window and may emit such references.
	ZeroWindow bool
}

// Decode decompresses src into dst and returns the part of dst that was
// written. It fails with ErrOutputFull if dst is too small, and with
// ErrIllegalBackref if the stream refers to data before its start.
//
// Running out of input, even in the middle of a token, ends the stream
// normally, so a truncated stream is not reported as an error.
func Decode(dst, src []byte, cfg Config) ([]byte, error) {
	return Decoder{Config: cfg}.Decode(dst, src)
}

// Decode decompresses src into dst, as the package-level Decode does.
func (d Decoder) Decode(dst, src []byte) ([]byte, error) {
	dec := decoder{
		cfg:        d.Config.normalize(),
		zeroWindow: d.ZeroWindow,
		br:         bitReader{src: src},
		dst:        dst,
	}
	return dec.decode()
}

// decoder holds the state for one call to Decode. The output buffer is
// also the window that back-references copy from.
type decoder struct {
	cfg        Config
	zeroWindow bool
	br         bitReader
	dst        []byte
	head       int // bytes written to dst
	index      int // back-reference distance being assembled
	count      int // back-reference length being assembled
}

func (d *decoder) decode() ([]byte, error) {
	s := stateTagBit
	for {
		s = d.step(s)
		if debugDecoder {
			log.Printf("state %v bit %d head %d", s, d.br.pos, d.head)
		}
		switch s {
		case stateNeedMoreData:
			return d.dst[:d.head], nil
		case stateOutputFull:
			return nil, ErrOutputFull
		case stateIllegalBackref:
			return nil, ErrIllegalBackref
		}
		if d.br.remaining() < 0 {
			return d.dst[:d.head], nil
		}
		if d.head > len(d.dst) {
			return nil, ErrOutputFull
		}
	}
}

// step runs the action for state s and returns the next state.
func (d *decoder) step(s state) state {
	switch s {
	case stateTagBit:
		return d.tagBit()
	case stateYieldLiteral:
		return d.yieldLiteral()
	case stateBackrefIndexMSB:
		return d.backrefIndexMSB()
	case stateBackrefIndexLSB:
		return d.backrefIndexLSB()
	case stateBackrefCountMSB:
		return d.backrefCountMSB()
	case stateBackrefCountLSB:
		return d.backrefCountLSB()
	case stateYieldBackref:
		return d.yieldBackref()
	}
	return s
}

func (d *decoder) tagBit() state {
	bit, ok := d.br.getBits(1)
	switch {
	case !ok:
		return stateNeedMoreData
	case bit == 1:
		return stateYieldLiteral
	case d.cfg.window > 8:
		return stateBackrefIndexMSB
	default:
		d.index = 0
		return stateBackrefIndexLSB
	}
}

func (d *decoder) yieldLiteral() state {
	c, ok := d.br.getBits(8)
	if !ok {
		return stateNeedMoreData
	}
	if d.head >= len(d.dst) {
		return stateOutputFull
	}
	d.dst[d.head] = byte(c)
	d.head++
	return stateTagBit
}

func (d *decoder) backrefIndexMSB() state {
	v, ok := d.br.getBits(uint(d.cfg.window) - 8)
	if !ok {
		return stateNeedMoreData
	}
	d.index = int(v) << 8
	return stateBackrefIndexLSB
}

func (d *decoder) backrefIndexLSB() state {
	v, ok := d.br.getBits(uint(min8(d.cfg.window)))
	if !ok {
		return stateNeedMoreData
	}
	d.index |= int(v)
	d.index++
	d.count = 0
	if d.cfg.lookahead > 8 {
		return stateBackrefCountMSB
	}
	return stateBackrefCountLSB
}

func (d *decoder) backrefCountMSB() state {
	v, ok := d.br.getBits(uint(d.cfg.lookahead) - 8)
	if !ok {
		return stateNeedMoreData
	}
	d.count = int(v) << 8
	return stateBackrefCountLSB
}

func (d *decoder) backrefCountLSB() state {
	v, ok := d.br.getBits(uint(min8(d.cfg.lookahead)))
	if !ok {
		return stateNeedMoreData
	}
	d.count |= int(v)
	d.count++
	return stateYieldBackref
}

func (d *decoder) yieldBackref() state {
	distance, length := d.index, d.count
	if distance > d.head && !d.zeroWindow {
		return stateIllegalBackref
	}
	if d.head+length > len(d.dst) {
		return stateOutputFull
	}
	// Copy one byte at a time: when distance < length the copy reads bytes
	// it has just written.
	for i := 0; i < length; i++ {
		var c byte
		if from := d.head - distance; from >= 0 {
			c = d.dst[from]
		}
		d.dst[d.head] = c
		d.head++
	}
	return stateTagBit
}

func min8(n uint8) uint8 {
	if n < 8 {
		return n
	}
	return 8
}
