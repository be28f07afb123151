package glorious

import (
	"github.com/andersenchen/glorious/internal/bits"
	"github.com/andersenchen/glorious/internal/ring"
)

// A coder holds the interval state shared by encoding and decoding. An
// instance is single-use: created at the start of a call, mutated
// throughout, and discarded at the end.
type coder struct {
	// Interval endpoints, both inclusive. low <= high < 2^Precision holds
	// after every operation.
	low, high uint32
	// Current Precision-bit window into the encoded stream. Decoding only.
	value uint32
	// Deferred straddle bits awaiting resolution. Encoding only.
	pending uint64
	// Ring of the last contextLen bits coded.
	ctx *ring.Buffer
	// Probability model for the next bit.
	pred Predictor
}

// newCoder returns a coder over the full interval with an all-zero context.
func newCoder(contextLen int, pred Predictor) *coder {
	return &coder{
		high: total - 1,
		ctx:  ring.New(contextLen),
		pred: pred,
	}
}

// splitPoint queries the predictor with the current context snapshot and
// returns the scaled cumulative frequency of bit zero on the 2^Precision
// scale.
func (c *coder) splitPoint() uint32 {
	snapshot := Context{
		Ones:   uint64(c.ctx.Ones()),
		Length: uint64(c.ctx.Len()),
	}
	p1 := clampProb(c.pred.ProbOne(snapshot))
	p0 := uint32(ProbScale) - p1
	scaledP0 := uint32(uint64(p0) * total / ProbScale)
	if scaledP0 >= total {
		scaledP0 = total - 1
	}
	return scaledP0
}

// narrow restricts the interval to the subinterval claimed by bit b. Bit
// zero claims [low, cut-1], bit one claims [cut, high].
func (c *coder) narrow(b, scaledP0 uint32) {
	rng := uint64(c.high) - uint64(c.low) + 1
	cut := c.low + uint32(rng*uint64(scaledP0)/total)
	if b == 0 {
		c.high = cut - 1
	} else {
		c.low = cut
	}
}

// renormEncode rescales the interval after a narrowing step, emitting the
// settled top bits. The rule order matches renormDecode; the two must stay
// bit-for-bit locked.
func (c *coder) renormEncode(bw *bits.Writer) error {
	for {
		switch {
		case c.high < half:
			// Top bit settled at zero.
			if err := c.emit(bw, 0); err != nil {
				return err
			}
		case c.low >= half:
			// Top bit settled at one.
			if err := c.emit(bw, 1); err != nil {
				return err
			}
			c.low -= half
			c.high -= half
		case c.low >= quarter && c.high < threeQuarter:
			// Interval straddles the midpoint; defer the bit.
			c.pending++
			c.low -= quarter
			c.high -= quarter
		default:
			return nil
		}
		c.low <<= 1
		c.high = c.high<<1 | 1
	}
}

// emit writes b followed by the straddle bits deferred while the interval
// sat across the midpoint, each taking the opposite value of b.
func (c *coder) emit(bw *bits.Writer, b uint32) error {
	if err := bw.WriteBit(b); err != nil {
		return err
	}
	for ; c.pending > 0; c.pending-- {
		if err := bw.WriteBit(b ^ 1); err != nil {
			return err
		}
	}
	return nil
}

// finish disambiguates the final interval once all input bits are coded,
// emitting enough bits for the decoder to land inside it.
func (c *coder) finish(bw *bits.Writer) error {
	c.pending++
	if c.low < quarter {
		return c.emit(bw, 0)
	}
	return c.emit(bw, 1)
}

// renormDecode mirrors renormEncode on the decoding side, sliding the value
// window along with the interval and drawing fresh bits from the encoded
// stream.
func (c *coder) renormDecode(br *bits.Reader) {
	for {
		switch {
		case c.high < half:
			// Top bit settled at zero.
		case c.low >= half:
			c.value -= half
			c.low -= half
			c.high -= half
		case c.low >= quarter && c.high < threeQuarter:
			c.value -= quarter
			c.low -= quarter
			c.high -= quarter
		default:
			return
		}
		c.low <<= 1
		c.high = c.high<<1 | 1
		c.value = c.value<<1 | br.ReadBit()
	}
}
