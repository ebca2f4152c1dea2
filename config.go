package heatshrink

import "fmt"

const (
	defaultWindow    uint8 = 11
	defaultLookahead uint8 = 4

	// MinSize and MaxSize bound both the window and the lookahead exponent.
	MinSize uint8 = 1
	MaxSize uint8 = 16
)

// A Config holds the two size parameters of a heatshrink stream. The
// encoder and the decoder must use identical values; nothing in the stream
// records them.
//
// The zero Config is equivalent to DefaultConfig.
type Config struct {
	window    uint8
	lookahead uint8
}

// DefaultConfig returns the configuration with a 2 KiB window (w=11) and
// 16-byte lookahead (l=4).
func DefaultConfig() Config {
	return Config{window: defaultWindow, lookahead: defaultLookahead}
}

// NewConfig returns a Config with the given base-2 logarithms of the
// window size and the lookahead size. Both must be in the range 1–16.
func NewConfig(window, lookahead uint8) (Config, error) {
	c, err := DefaultConfig().WithWindow(window)
	if err != nil {
		return Config{}, err
	}
	return c.WithLookahead(lookahead)
}

// WithWindow returns a copy of c with the window exponent set to w.
func (c Config) WithWindow(w uint8) (Config, error) {
	if err := checkSize("window", w); err != nil {
		return c, err
	}
	c = c.normalize()
	c.window = w
	return c, nil
}

// WithLookahead returns a copy of c with the lookahead exponent set to l.
func (c Config) WithLookahead(l uint8) (Config, error) {
	if err := checkSize("lookahead", l); err != nil {
		return c, err
	}
	c = c.normalize()
	c.lookahead = l
	return c, nil
}

func checkSize(name string, v uint8) error {
	switch {
	case v < MinSize:
		return fmt.Errorf("%w: %s %d too small (min %d)", ErrSizeRange, name, v, MinSize)
	case v > MaxSize:
		return fmt.Errorf("%w: %s %d too large (max %d)", ErrSizeRange, name, v, MaxSize)
	}
	return nil
}

// normalize replaces the zero Config with the defaults. The fields can
// only be set through the validating constructors, so a Config is either
// zero or valid.
func (c Config) normalize() Config {
	if c.window == 0 {
		return DefaultConfig()
	}
	return c
}

// Window returns the base-2 logarithm of the window size.
func (c Config) Window() uint8 { return c.normalize().window }

// Lookahead returns the base-2 logarithm of the lookahead size.
func (c Config) Lookahead() uint8 { return c.normalize().lookahead }

// WindowSize returns the maximum back-reference distance.
func (c Config) WindowSize() int { return 1 << c.Window() }

// LookaheadSize returns the maximum back-reference length.
func (c Config) LookaheadSize() int { return 1 << c.Lookahead() }

// threshold is the longest match that is still cheaper to send as
// literals.
func (c Config) threshold() int {
	c = c.normalize()
	return (1 + int(c.window) + int(c.lookahead)) / 8
}

func (c Config) String() string {
	c = c.normalize()
	return fmt.Sprintf("heatshrink(w=%d, l=%d)", c.window, c.lookahead)
}

// MaxEncodedLen returns the largest number of bytes that Encode can
// produce from n bytes of input. A literal costs 9 bits, and a
// back-reference is only used when it is smaller than the literals it
// replaces.
func MaxEncodedLen(n int) int {
	return (9*n + 7) / 8
}
