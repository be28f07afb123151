package glorious

import (
	"github.com/andersenchen/glorious/internal/bits"
	"github.com/mewkiz/pkg/errutil"
	"github.com/pkg/errors"
)

// Encode compresses the first nbits bits of sequence and returns the packed
// encoded byte stream. sequence is read MSB-first within each byte and must
// hold at least nbits bits. contextLen is the number of recent bits made
// visible to the predictor; it must match on decode, along with nbits and
// the predictor itself, as none of them are recoverable from the encoded
// stream.
func Encode(sequence []byte, nbits, contextLen int, pred Predictor) ([]byte, error) {
	if err := validate(nbits, contextLen, pred); err != nil {
		return nil, err
	}
	if nbits > 8*len(sequence) {
		return nil, errors.Errorf("glorious: bit length %d exceeds sequence size of %d bits", nbits, 8*len(sequence))
	}

	c := newCoder(contextLen, pred)
	bw := bits.NewWriter()
	for i := 0; i < nbits; i++ {
		b := bits.Get(sequence, i)
		c.narrow(b, c.splitPoint())
		if err := c.renormEncode(bw); err != nil {
			return nil, errutil.Err(err)
		}
		c.ctx.Push(b)
	}

	// Settle the final interval and pad the trailing byte.
	if err := c.finish(bw); err != nil {
		return nil, errutil.Err(err)
	}
	buf, err := bw.Flush()
	if err != nil {
		return nil, errutil.Err(err)
	}
	return buf, nil
}
