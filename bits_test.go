package heatshrink

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/icza/bitio"
)

type bitField struct {
	n uint
	v uint32
}

func randomFields(rng *rand.Rand, count int) []bitField {
	fields := make([]bitField, count)
	for i := range fields {
		n := uint(rng.Intn(16) + 1)
		fields[i] = bitField{n: n, v: uint32(rng.Intn(1 << n))}
	}
	return fields
}

func TestBitWriterMatchesBitio(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		fields := randomFields(rng, rng.Intn(40))

		want := new(bytes.Buffer)
		ref := bitio.NewWriter(want)
		for _, f := range fields {
			if err := ref.WriteBits(uint64(f.v), uint8(f.n)); err != nil {
				t.Fatal(err)
			}
		}
		if err := ref.Close(); err != nil {
			t.Fatal(err)
		}

		bw := bitWriter{dst: make([]byte, want.Len())}
		for _, f := range fields {
			if err := bw.writeBits(f.n, f.v); err != nil {
				t.Fatal(err)
			}
		}
		if err := bw.flush(false); err != nil {
			t.Fatal(err)
		}
		if got := bw.dst[:bw.pos]; !bytes.Equal(got, want.Bytes()) {
			t.Fatalf("trial %d: got %x, want %x", trial, got, want.Bytes())
		}
	}
}

func TestBitReaderMatchesBitio(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 50; trial++ {
		src := make([]byte, rng.Intn(20))
		rng.Read(src)

		ref := bitio.NewReader(bytes.NewReader(src))
		br := bitReader{src: src}
		for {
			n := uint(rng.Intn(16) + 1)
			got, ok := br.getBits(n)
			if !ok {
				if br.remaining() >= int(n) {
					t.Fatalf("getBits(%d) failed with %d bits remaining", n, br.remaining())
				}
				break
			}
			want, err := ref.ReadBits(uint8(n))
			if err != nil {
				t.Fatal(err)
			}
			if uint64(got) != want {
				t.Fatalf("trial %d: getBits(%d) = %#x, want %#x", trial, n, got, want)
			}
		}
	}
}

func TestGetBitsShort(t *testing.T) {
	br := bitReader{src: []byte{0xA5}}
	if v, ok := br.getBits(3); !ok || v != 5 {
		t.Fatalf("getBits(3) = %d, %v", v, ok)
	}
	if _, ok := br.getBits(6); ok {
		t.Fatal("getBits(6) succeeded with 5 bits left")
	}
	if br.pos != 3 {
		t.Fatalf("failed read moved the cursor to %d", br.pos)
	}
	if v, ok := br.getBits(5); !ok || v != 5 {
		t.Fatalf("getBits(5) = %d, %v", v, ok)
	}
	if _, ok := br.getBits(1); ok {
		t.Fatal("read past the end of the input")
	}
}

func TestBitWriterFull(t *testing.T) {
	bw := bitWriter{dst: make([]byte, 1)}
	if err := bw.writeBits(9, 0x1ff); err != nil {
		t.Fatal(err)
	}
	if err := bw.flush(false); err != ErrOutputFull {
		t.Fatalf("flush: got %v, want ErrOutputFull", err)
	}

	bw = bitWriter{dst: make([]byte, 1)}
	if err := bw.writeBits(16, 0xffff); err != ErrOutputFull {
		t.Fatalf("writeBits: got %v, want ErrOutputFull", err)
	}
}

func TestFlushMarker(t *testing.T) {
	bw := bitWriter{dst: make([]byte, 2)}
	bw.writeBits(5, 0x1f)
	if p := bw.padding(); p != 3 {
		t.Fatalf("padding() = %d, want 3", p)
	}
	bw.flush(true)
	if bw.dst[0] != 0xfc {
		t.Fatalf("flushed %#02x, want 0xfc", bw.dst[0])
	}
}
