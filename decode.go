package glorious

import (
	"github.com/andersenchen/glorious/internal/bits"
)

// Decode expands an encoded stream back into its original bits, and returns
// a packed buffer of (nbits+7)/8 bytes holding exactly nbits decoded bits;
// bits past position nbits-1 in the last byte are zero. nbits, contextLen
// and pred must match the values used to encode.
//
// A truncated or corrupted stream is not detected; the decoder draws virtual
// zero bits past the end of encoded and produces garbage output instead of
// an error.
func Decode(encoded []byte, nbits, contextLen int, pred Predictor) ([]byte, error) {
	if err := validate(nbits, contextLen, pred); err != nil {
		return nil, err
	}

	c := newCoder(contextLen, pred)
	br := bits.NewReader(encoded)
	// Prime the value window with the first Precision bits of the stream.
	for i := 0; i < Precision; i++ {
		c.value = c.value<<1 | br.ReadBit()
	}

	decoded := make([]byte, (nbits+7)/8)
	for i := 0; i < nbits; i++ {
		scaledP0 := c.splitPoint()
		rng := uint64(c.high) - uint64(c.low) + 1
		scaledValue := ((uint64(c.value)-uint64(c.low)+1)<<Precision - 1) / rng

		var b uint32
		if scaledValue >= uint64(scaledP0) {
			b = 1
			bits.Set(decoded, i)
		}
		c.narrow(b, scaledP0)
		c.ctx.Push(b)
		c.renormDecode(br)
	}
	return decoded, nil
}
