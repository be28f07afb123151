// wav2gl is a tool which compresses WAV files with the glorious arithmetic
// coder, producing .gl files.
//
// A .gl file is a small container: the "glAC" magic, the sample format, the
// coding parameters and the encoded payload. The container exists so the
// file is self-describing; the codec itself stays unframed.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/andersenchen/glorious"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"
)

// glMagic is present at the beginning of each .gl file.
const glMagic = "glAC"

// A header describes the sample format and coding parameters of a .gl file.
type header struct {
	// Sample rate in Hz.
	SampleRate uint32
	// Number of channels.
	NChannels uint16
	// Sample size in bits-per-sample.
	BitsPerSample uint16
	// Context length in bits used by the coder.
	ContextLen uint32
	// Number of plain bits encoded.
	NBits uint64
	// Encoded payload size in bytes.
	EncLen uint64
}

func main() {
	// Parse command line arguments.
	var (
		// force overwrite .gl file if already present.
		force bool
		// contextLen is the context length in bits used by the coder.
		contextLen int
	)
	flag.BoolVar(&force, "f", false, "force overwrite")
	flag.IntVar(&contextLen, "k", 16, "context length in bits")
	flag.Parse()
	for _, wavPath := range flag.Args() {
		if err := wav2gl(wavPath, contextLen, force); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

func wav2gl(wavPath string, contextLen int, force bool) error {
	// Create WAV decoder.
	r, err := os.Open(wavPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return errors.Errorf("invalid WAV file %q", wavPath)
	}
	sampleRate, nchannels, bps := int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth)
	if bps%8 != 0 {
		return errors.Errorf("support for %d bits-per-sample not yet implemented", bps)
	}

	glPath := pathutil.TrimExt(wavPath) + ".gl"
	if !force && osutil.Exists(glPath) {
		return errors.Errorf(".gl file %q already present; use -f flag to force overwrite", glPath)
	}

	// Collect the PCM samples as packed little-endian bytes.
	if err := dec.FwdToPCM(); err != nil {
		return errors.WithStack(err)
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nchannels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, 4096),
		SourceBitDepth: bps,
	}
	var pcm []byte
	for !dec.EOF() {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return errors.WithStack(err)
		}
		if n == 0 {
			break
		}
		for _, sample := range buf.Data[:n] {
			for b := 0; b < bps/8; b++ {
				pcm = append(pcm, byte(sample>>uint(8*b)))
			}
		}
	}

	// Encode the sample bytes.
	nbits := 8 * len(pcm)
	enc, err := glorious.Encode(pcm, nbits, contextLen, glorious.Laplace{})
	if err != nil {
		return errors.WithStack(err)
	}

	// Store the .gl container.
	w, err := os.Create(glPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()
	if _, err := w.Write([]byte(glMagic)); err != nil {
		return errors.WithStack(err)
	}
	hdr := header{
		SampleRate:    uint32(sampleRate),
		NChannels:     uint16(nchannels),
		BitsPerSample: uint16(bps),
		ContextLen:    uint32(contextLen),
		NBits:         uint64(nbits),
		EncLen:        uint64(len(enc)),
	}
	if err := binary.Write(w, binary.BigEndian, hdr); err != nil {
		return errors.WithStack(err)
	}
	if _, err := w.Write(enc); err != nil {
		return errors.WithStack(err)
	}
	fmt.Printf("%s: %d PCM bytes -> %s: %d encoded bytes\n", wavPath, len(pcm), glPath, len(enc))
	return nil
}
