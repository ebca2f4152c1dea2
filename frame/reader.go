package frame

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/heatshrink"
)

// A Reader decompresses a series of frames, as written by a Writer.
type Reader struct {
	Config heatshrink.Config

	// MaxBlockSize is the largest decoded frame that will be accepted.
	// The default is 1 MiB.
	MaxBlockSize int

	src   *bufio.Reader
	body  []byte
	block []byte
	pos   int
	err   error
}

// NewReader returns a Reader that decompresses frames from r using cfg.
func NewReader(r io.Reader, cfg heatshrink.Config) *Reader {
	z := &Reader{Config: cfg}
	z.Reset(r)
	return z
}

// Reset discards the Reader's state and makes it read from r.
func (z *Reader) Reset(r io.Reader) {
	if br, ok := r.(*bufio.Reader); ok {
		z.src = br
	} else if z.src == nil {
		z.src = bufio.NewReader(r)
	} else {
		z.src.Reset(r)
	}
	z.block = z.block[:0]
	z.pos = 0
	z.err = nil
}

func (z *Reader) maxBlockSize() int {
	if z.MaxBlockSize <= 0 {
		return 1 << 20
	}
	return z.MaxBlockSize
}

func (z *Reader) Read(p []byte) (int, error) {
	for z.pos == len(z.block) {
		if z.err != nil {
			return 0, z.err
		}
		z.err = z.nextFrame()
	}
	n := copy(p, z.block[z.pos:])
	z.pos += n
	return n, nil
}

// nextFrame reads and decodes the next frame. It returns io.EOF if the
// input ends cleanly between frames.
func (z *Reader) nextFrame() error {
	decodedLen, err := binary.ReadUvarint(z.src)
	if err == io.EOF {
		return io.EOF
	}
	if err != nil {
		return readError(err)
	}
	encodedLen, err := binary.ReadUvarint(z.src)
	if err != nil {
		return readError(err)
	}
	var sum [4]byte
	if _, err := io.ReadFull(z.src, sum[:]); err != nil {
		return readError(err)
	}

	if decodedLen > uint64(z.maxBlockSize()) {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, decodedLen)
	}
	h := header{
		decodedLen: int(decodedLen),
		checksum:   binary.LittleEndian.Uint32(sum[:]),
	}
	if encodedLen > uint64(heatshrink.MaxEncodedLen(h.decodedLen)) {
		return ErrCorrupt
	}
	h.encodedLen = int(encodedLen)
	if err := h.check(z.Config); err != nil {
		return err
	}

	if cap(z.body) < h.encodedLen {
		z.body = make([]byte, h.encodedLen)
	}
	z.body = z.body[:h.encodedLen]
	if _, err := io.ReadFull(z.src, z.body); err != nil {
		return readError(err)
	}

	if cap(z.block) < h.decodedLen {
		z.block = make([]byte, h.decodedLen)
	}
	out, err := decodeBody(z.block[:h.decodedLen], z.body, h, z.Config)
	if err != nil {
		z.block = z.block[:0]
		z.pos = 0
		return err
	}
	z.block = out
	z.pos = 0
	return nil
}

func readError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrShortFrame
	}
	return err
}
