package glorious

// A Context is the aggregate snapshot of the coder's recent history handed
// to predictors: the number of one bits among the last Length bits coded.
// The coder maintains the count incrementally, so predictors never see the
// raw bit ring.
type Context struct {
	// Number of one bits in the context window.
	Ones uint64
	// Context window size in bits.
	Length uint64
}

// A Predictor estimates the probability of the next bit being one, as a
// fixed-point value on the ProbScale scale.
//
// Predictors must be deterministic: the encoder and decoder query them with
// identical snapshots in identical order, and any disagreement between the
// two sides silently corrupts the decoded output. Results are clamped to
// [1, ProbScale-1] before use, so both symbols always remain codable.
type Predictor interface {
	ProbOne(ctx Context) uint32
}

// PredictorFunc adapts a plain function to the Predictor interface.
type PredictorFunc func(ctx Context) uint32

// ProbOne calls f(ctx).
func (f PredictorFunc) ProbOne(ctx Context) uint32 {
	return f(ctx)
}

// Laplace is the smoothed-count model, predicting
//
//	P(1) = (ones + 1) / (length + 2)
//
// so an all-zero history still leaves bit one codable and vice versa. The
// conversion to fixed point rounds half up and uses integer arithmetic
// only.
type Laplace struct{}

// ProbOne returns the smoothed probability of bit one for the given
// snapshot. An empty context yields ProbScale/2.
func (Laplace) ProbOne(ctx Context) uint32 {
	if ctx.Length == 0 {
		return ProbScale / 2
	}
	den := ctx.Length + 2
	p1 := ((ctx.Ones+1)*ProbScale + den/2) / den
	return clampProb(uint32(p1))
}

// Uniform predicts zero and one as equally likely regardless of context.
type Uniform struct{}

// ProbOne returns ProbScale/2.
func (Uniform) ProbOne(Context) uint32 {
	return ProbScale / 2
}

// clampProb forces a predictor result into [1, ProbScale-1], avoiding the
// degenerate endpoints that would assign one symbol an empty subinterval.
func clampProb(p1 uint32) uint32 {
	if p1 < 1 {
		return 1
	}
	if p1 > ProbScale-1 {
		return ProbScale - 1
	}
	return p1
}
