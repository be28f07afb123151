// Package glorious implements a context-modelled binary arithmetic coder.
//
// The coder compresses an arbitrary-length bit sequence into a shorter bit
// string by successively narrowing a half-open integer interval in
// proportion to the probability of each observed bit. Probabilities come
// from a caller-supplied Predictor, which is queried once per coded bit with
// an aggregate snapshot of the last K bits seen. Encoder and decoder perform
// the same arithmetic in the same order, so a decode with matching context
// length and predictor reproduces the input exactly.
//
// The encoded stream carries no framing, header or checksum. The tuple
// (context length, predictor, decoded bit length) is an out-of-band contract
// between the two sides; mismatches silently decode to garbage.
package glorious

import (
	"github.com/pkg/errors"
)

// Coding constants.
const (
	// Precision is the width in bits of the interval endpoints.
	Precision = 31
	// ProbScale is the denominator of the fixed-point probabilities returned
	// by predictors.
	ProbScale = 1 << 16
	// MaxContextLen is the maximum context length in bits (256 000 bytes of
	// packed context).
	MaxContextLen = 256000 * 8
)

// Interval bounds derived from Precision.
const (
	total        = 1 << Precision
	half         = 1 << (Precision - 1)
	quarter      = 1 << (Precision - 2)
	threeQuarter = 3 << (Precision - 2)
)

// validate reports whether the common encode and decode arguments are usable
// before any coder state is allocated.
func validate(nbits, contextLen int, pred Predictor) error {
	if nbits < 0 {
		return errors.Errorf("glorious: negative bit length %d", nbits)
	}
	if contextLen < 0 {
		return errors.Errorf("glorious: negative context length %d", contextLen)
	}
	if contextLen > MaxContextLen {
		return errors.Errorf("glorious: context length %d exceeds maximum %d", contextLen, MaxContextLen)
	}
	if pred == nil {
		return errors.New("glorious: nil predictor")
	}
	return nil
}
