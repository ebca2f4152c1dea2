package heatshrink

import (
	"errors"
	"testing"
)

func TestNewConfigRange(t *testing.T) {
	for w := 0; w <= 20; w++ {
		for l := 0; l <= 20; l++ {
			c, err := NewConfig(uint8(w), uint8(l))
			valid := w >= 1 && w <= 16 && l >= 1 && l <= 16
			if valid {
				if err != nil {
					t.Fatalf("NewConfig(%d, %d): %v", w, l, err)
				}
				if c.Window() != uint8(w) || c.Lookahead() != uint8(l) {
					t.Fatalf("NewConfig(%d, %d) = %v", w, l, c)
				}
				continue
			}
			if !errors.Is(err, ErrSizeRange) {
				t.Fatalf("NewConfig(%d, %d): got error %v, want ErrSizeRange", w, l, err)
			}
		}
	}
}

func TestConfigWith(t *testing.T) {
	c := DefaultConfig()
	if c.Window() != 11 || c.Lookahead() != 4 {
		t.Fatalf("DefaultConfig() = %v", c)
	}

	c2, err := c.WithWindow(8)
	if err != nil {
		t.Fatal(err)
	}
	if c2.Window() != 8 || c2.Lookahead() != 4 {
		t.Fatalf("WithWindow(8) = %v", c2)
	}
	if c.Window() != 11 {
		t.Fatal("WithWindow modified its receiver")
	}

	c3, err := c2.WithLookahead(16)
	if err != nil {
		t.Fatal(err)
	}
	if c3.Window() != 8 || c3.Lookahead() != 16 {
		t.Fatalf("WithLookahead(16) = %v", c3)
	}

	for _, v := range []uint8{0, 17, 255} {
		if _, err := c.WithWindow(v); !errors.Is(err, ErrSizeRange) {
			t.Errorf("WithWindow(%d): got %v, want ErrSizeRange", v, err)
		}
		if _, err := c.WithLookahead(v); !errors.Is(err, ErrSizeRange) {
			t.Errorf("WithLookahead(%d): got %v, want ErrSizeRange", v, err)
		}
	}
}

func TestZeroConfig(t *testing.T) {
	var c Config
	if c.Window() != 11 || c.Lookahead() != 4 {
		t.Fatalf("zero Config = %v, want the defaults", c)
	}
	if c.WindowSize() != 2048 || c.LookaheadSize() != 16 {
		t.Fatalf("zero Config sizes = %d, %d", c.WindowSize(), c.LookaheadSize())
	}
	c, err := c.WithLookahead(6)
	if err != nil {
		t.Fatal(err)
	}
	if c.Window() != 11 || c.Lookahead() != 6 {
		t.Fatalf("zero Config WithLookahead(6) = %v", c)
	}
	if s := c.String(); s != "heatshrink(w=11, l=6)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestThreshold(t *testing.T) {
	for _, tc := range []struct {
		w, l uint8
		want int
	}{
		{11, 4, 2},
		{8, 4, 1},
		{1, 1, 0},
		{3, 3, 0},
		{4, 3, 1},
		{16, 16, 4},
	} {
		c, err := NewConfig(tc.w, tc.l)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.threshold(); got != tc.want {
			t.Errorf("threshold(%d, %d) = %d, want %d", tc.w, tc.l, got, tc.want)
		}
	}
}
