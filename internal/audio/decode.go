package audio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cwbudde/wav"
)

// Info is the stream layout reported by the reference decoder.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Samples    int // interleaved values, not frames
}

// Inspect decodes data produced by Encode or EncodeReference with the
// cwbudde/wav decoder and reports its layout.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, errors.New("empty WAV input")
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return Info{}, errors.New("invalid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Info{}, fmt.Errorf("reading PCM data: %w", err)
	}

	return Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Samples:    len(buf.Data),
	}, nil
}

// Match returns ErrFormatMismatch describing the first field of i that
// differs from want.
func (i Info) Match(want Info) error {
	if i.SampleRate != want.SampleRate {
		return fmt.Errorf("%w: sample rate %d, want %d", ErrFormatMismatch, i.SampleRate, want.SampleRate)
	}
	if i.Channels != want.Channels {
		return fmt.Errorf("%w: channels %d, want %d", ErrFormatMismatch, i.Channels, want.Channels)
	}
	if i.BitDepth != want.BitDepth {
		return fmt.Errorf("%w: bit depth %d, want %d", ErrFormatMismatch, i.BitDepth, want.BitDepth)
	}
	if i.Samples != want.Samples {
		return fmt.Errorf("%w: %d samples, want %d", ErrFormatMismatch, i.Samples, want.Samples)
	}

	return nil
}

// Expect returns the Info that Encode output for p in a format of the given
// bit depth decodes to.
func Expect(p Params, bitDepth int) Info {
	return Info{
		SampleRate: int(p.SampleRate),
		Channels:   int(p.Channels),
		BitDepth:   bitDepth,
		Samples:    p.NumSamples() * int(p.Channels),
	}
}
