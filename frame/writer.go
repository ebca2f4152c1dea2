package frame

import (
	"errors"
	"io"

	"github.com/andybalholm/heatshrink"
)

// A Writer compresses the data written to it and writes it to Dest as a
// series of frames, one for each BlockSize bytes of input.
type Writer struct {
	Dest   io.Writer
	Config heatshrink.Config

	// MatchFinder finds the matches for each block. If it is nil,
	// heatshrink.Encode is used.
	MatchFinder heatshrink.MatchFinder

	// BlockSize is the amount of input in each frame.
	// The default is 4096.
	BlockSize int

	buf     []byte
	scratch []byte
	frame   []byte
	err     error
	closed  bool
}

// NewWriter returns a Writer that writes frames compressed with cfg to w.
func NewWriter(w io.Writer, cfg heatshrink.Config) *Writer {
	return &Writer{Dest: w, Config: cfg}
}

var errClosed = errors.New("frame: Writer is closed")

func (w *Writer) blockSize() int {
	if w.BlockSize <= 0 {
		return 4096
	}
	return w.BlockSize
}

// Write buffers p, writing a frame each time a block is full.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, errClosed
	}

	size := w.blockSize()
	for len(p) > 0 {
		k := size - len(w.buf)
		if k > len(p) {
			k = len(p)
		}
		w.buf = append(w.buf, p[:k]...)
		p = p[k:]
		n += k
		if len(w.buf) == size {
			if err := w.Flush(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// Flush writes any buffered data as a frame.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(w.buf) == 0 {
		return nil
	}

	if n := heatshrink.MaxEncodedLen(len(w.buf)); cap(w.scratch) < n {
		w.scratch = make([]byte, n)
	}
	w.frame, w.err = appendFrame(w.frame[:0], w.scratch[:cap(w.scratch)], w.buf, w.MatchFinder, nil, w.Config)
	if w.err != nil {
		return w.err
	}
	if w.MatchFinder != nil {
		w.MatchFinder.Reset()
	}
	w.buf = w.buf[:0]

	_, w.err = w.Dest.Write(w.frame)
	return w.err
}

// Close flushes the remaining data. It does not close Dest.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	err := w.Flush()
	w.closed = true
	return err
}

// Reset discards the Writer's state and makes it write to dest,
// keeping its settings and buffers.
func (w *Writer) Reset(dest io.Writer) {
	w.Dest = dest
	w.buf = w.buf[:0]
	w.err = nil
	w.closed = false
	if w.MatchFinder != nil {
		w.MatchFinder.Reset()
	}
}
