package bits_test

import (
	"testing"

	"github.com/andersenchen/glorious/internal/bits"
	"github.com/icza/mighty"
)

func TestWriter(t *testing.T) {
	eq := mighty.Eq(t)

	w := bits.NewWriter()
	for _, b := range []uint32{1, 1, 0, 0, 1, 0, 1, 0} {
		if err := w.WriteBit(b); err != nil {
			t.Fatalf("error writing bit: %v", err)
		}
	}
	buf, err := w.Flush()
	if err != nil {
		t.Fatalf("error flushing writer: %v", err)
	}
	eq(1, len(buf))
	eq(byte(0xCA), buf[0])
}

func TestWriterPartialFlush(t *testing.T) {
	eq := mighty.Eq(t)

	w := bits.NewWriter()
	for _, b := range []uint32{1, 0, 1} {
		if err := w.WriteBit(b); err != nil {
			t.Fatalf("error writing bit: %v", err)
		}
	}
	buf, err := w.Flush()
	if err != nil {
		t.Fatalf("error flushing writer: %v", err)
	}
	// The trailing partial byte is padded with zeros on the right.
	eq(1, len(buf))
	eq(byte(0xA0), buf[0])
}

func TestWriterEmpty(t *testing.T) {
	eq := mighty.Eq(t)

	w := bits.NewWriter()
	buf, err := w.Flush()
	if err != nil {
		t.Fatalf("error flushing writer: %v", err)
	}
	eq(0, len(buf))
}

func TestReader(t *testing.T) {
	eq := mighty.Eq(t)

	r := bits.NewReader([]byte{0xCA})
	want := []uint32{1, 1, 0, 0, 1, 0, 1, 0}
	for i, w := range want {
		got := r.ReadBit()
		if got != w {
			t.Fatalf("bit %d mismatch; expected %d, got %d", i, w, got)
		}
	}
	// Past the end of the buffer the reader yields zeros indefinitely.
	for i := 0; i < 64; i++ {
		eq(uint32(0), r.ReadBit())
	}
}

func TestReaderEmpty(t *testing.T) {
	eq := mighty.Eq(t)

	r := bits.NewReader(nil)
	for i := 0; i < 40; i++ {
		eq(uint32(0), r.ReadBit())
	}
}

func TestGetSet(t *testing.T) {
	eq := mighty.Eq(t)

	buf := []byte{0xCA, 0x00}
	want := []uint32{1, 1, 0, 0, 1, 0, 1, 0}
	for i, w := range want {
		eq(w, bits.Get(buf, i))
	}

	out := make([]byte, 2)
	for i, b := range want {
		if b == 1 {
			bits.Set(out, i)
		}
	}
	eq(byte(0xCA), out[0])
	eq(byte(0x00), out[1])

	bits.Set(out, 15)
	eq(byte(0x01), out[1])
}
