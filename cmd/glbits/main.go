// glbits is a tool which encodes, decodes and round-trip checks packed bit
// streams using the glorious arithmetic coder.
//
// Usage:
//
//	glbits [-n BITS] [-k BITS] IN OUT          encode IN to OUT
//	glbits -dec -n BITS [-k BITS] IN OUT       decode IN to OUT
//	glbits -check -n BITS [-k BITS] [-p PROB]  round-trip a random sequence
//
// With no arguments, glbits round-trips the built-in demo byte 0xCA.
//
// The encoded stream carries no framing: the decoded bit length and context
// length passed to -dec must match the ones used to encode.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/andersenchen/glorious"
	"github.com/pkg/errors"
)

var (
	// nbits specifies the plain-side bit length.
	nbits int
	// contextLen specifies the context length in bits.
	contextLen int
	// decode specifies whether to decode instead of encode.
	decode bool
	// check specifies whether to round-trip a generated random sequence.
	check bool
	// prob specifies the probability of a one bit for -check.
	prob float64
	// seed specifies the random generator seed for -check.
	seed uint
)

func init() {
	flag.IntVar(&nbits, "n", 0, "bit length of the plain sequence (encode default: 8 times the input size)")
	flag.IntVar(&contextLen, "k", 4, "context length in bits")
	flag.BoolVar(&decode, "dec", false, "decode instead of encode")
	flag.BoolVar(&check, "check", false, "round-trip a generated random sequence")
	flag.Float64Var(&prob, "p", 0.5, "probability of a one bit for -check")
	flag.UintVar(&seed, "seed", 1, "random generator seed for -check")
}

func main() {
	flag.Parse()
	switch {
	case check:
		if err := checkRandom(nbits, contextLen, prob, uint32(seed)); err != nil {
			log.Fatalf("%+v", err)
		}
	case flag.NArg() == 0:
		// Demo vector: round-trip the single byte 11001010.
		if err := checkSequence([]byte{0xCA}, 8, contextLen); err != nil {
			log.Fatalf("%+v", err)
		}
	case flag.NArg() == 2:
		if err := transform(flag.Arg(0), flag.Arg(1)); err != nil {
			log.Fatalf("%+v", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// transform encodes or decodes inPath into outPath.
func transform(inPath, outPath string) error {
	in, err := os.ReadFile(inPath)
	if err != nil {
		return errors.WithStack(err)
	}
	var out []byte
	switch {
	case decode:
		if nbits <= 0 {
			return errors.New("decoding requires the original bit length; pass -n")
		}
		out, err = glorious.Decode(in, nbits, contextLen, glorious.Laplace{})
	default:
		n := nbits
		if n == 0 {
			n = 8 * len(in)
		}
		out, err = glorious.Encode(in, n, contextLen, glorious.Laplace{})
	}
	if err != nil {
		return errors.WithStack(err)
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return errors.WithStack(err)
	}
	fmt.Printf("%s: %d bytes -> %s: %d bytes\n", inPath, len(in), outPath, len(out))
	return nil
}

// checkRandom generates a random bit sequence with the given one-bit
// probability and round-trips it through the coder.
func checkRandom(nbits, contextLen int, prob float64, seed uint32) error {
	if nbits <= 0 {
		nbits = 10000
	}
	if prob < 0 || prob > 1 {
		return errors.Errorf("probability %v out of range [0, 1]", prob)
	}
	if seed == 0 {
		return errors.New("seed must be non-zero")
	}
	p1 := uint32(prob * glorious.ProbScale)
	return checkSequence(randomSequence(nbits, p1, seed), nbits, contextLen)
}

// checkSequence encodes and decodes sequence, verifies the round trip, and
// reports the compression rate.
func checkSequence(sequence []byte, nbits, contextLen int) error {
	enc, err := glorious.Encode(sequence, nbits, contextLen, glorious.Laplace{})
	if err != nil {
		return errors.WithStack(err)
	}
	dec, err := glorious.Decode(enc, nbits, contextLen, glorious.Laplace{})
	if err != nil {
		return errors.WithStack(err)
	}
	for i := 0; i < nbits; i++ {
		if getBit(sequence, i) != getBit(dec, i) {
			return errors.Errorf("round trip mismatch at bit %d of %d", i, nbits)
		}
	}
	rate := float64(8*len(enc)) / float64(nbits)
	fmt.Printf("round trip ok: %d bits -> %d encoded bytes (%.4f encoded bits per input bit)\n", nbits, len(enc), rate)
	return nil
}

// randomSequence returns a packed sequence of nbits bits where each bit is
// one with probability p1/glorious.ProbScale, generated with a xorshift
// state so runs are reproducible.
func randomSequence(nbits int, p1, seed uint32) []byte {
	buf := make([]byte, (nbits+7)/8)
	state := seed
	threshold := uint32(uint64(p1) * math.MaxUint32 / glorious.ProbScale)
	for i := 0; i < nbits; i++ {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		if state < threshold {
			buf[i/8] |= 1 << uint(7-i%8)
		}
	}
	return buf
}

// getBit returns the bit at position i of buf, packed MSB-first.
func getBit(buf []byte, i int) byte {
	return buf[i/8] >> uint(7-i%8) & 1
}
