package audio

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/example/go-wavtone/internal/sample"
	"github.com/example/go-wavtone/internal/signal"
)

// Params describes a tone and the channel layout it is written with.
type Params struct {
	signal.Params
	Channels uint16
}

// Validate checks the tone parameters and that a file in format f fits the
// 32-bit WAV size fields.
func (p Params) Validate(f sample.Format) error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.Channels == 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, p.Channels)
	}
	if uint64(p.Channels)*uint64(f.Size()) > math.MaxUint16 {
		return fmt.Errorf("%w: %d channels of %s exceed the block alignment field", ErrInvalidChannels, p.Channels, f.Name())
	}
	if uint64(p.SampleRate)*uint64(p.Channels)*uint64(f.Size()) > math.MaxUint32 {
		return fmt.Errorf("%w: byte rate of %v Hz × %d channels overflows", signal.ErrInvalidSampleRate, p.SampleRate, p.Channels)
	}
	if size := p.PayloadSize(f); size > MaxDataSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, size)
	}

	return nil
}

// PayloadSize is the data chunk length in bytes for format f.
func (p Params) PayloadSize(f sample.Format) uint64 {
	return uint64(p.NumSamples()) * uint64(p.Channels) * uint64(f.Size())
}

// Encode synthesizes the tone described by p in the representation of c and
// returns a complete WAV file.
//
// Every sample is written once per channel, so each frame carries the same
// value on all channels. Nothing is produced if p is invalid.
func Encode[T any](c sample.Codec[T], p Params) ([]byte, error) {
	if err := p.Validate(c); err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Name(), err)
	}

	return emit(c, p, signal.Generate(p.Sine(), p.NumSamples()))
}

// EncodeSignal is Encode for a signal that was already generated. raw must
// hold exactly p.NumSamples() values in [-1, 1].
func EncodeSignal[T any](c sample.Codec[T], p Params, raw []float32) ([]byte, error) {
	if err := p.Validate(c); err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Name(), err)
	}
	if len(raw) != p.NumSamples() {
		return nil, fmt.Errorf("encode %s: got %d samples, want %d", c.Name(), len(raw), p.NumSamples())
	}

	return emit(c, p, raw)
}

func emit[T any](c sample.Codec[T], p Params, raw []float32) ([]byte, error) {
	samples := signal.Convert(raw, c.FromSignal)
	payload := uint32(p.PayloadSize(c))

	hdr := NewHeader(uint32(p.SampleRate), c.BitsPerSample(), p.Channels)
	hdr.SetDataSize(payload)

	out, err := hdr.AppendBinary(make([]byte, 0, HeaderSize+int(payload)))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Name(), err)
	}

	frame := make([]byte, c.Size())
	for _, s := range samples {
		c.PutLE(frame, s)
		for range p.Channels {
			out = append(out, frame...)
		}
	}

	slog.Debug("encoded tone",
		"format", c.Name(),
		"samples", len(samples),
		"channels", p.Channels,
		"bytes", len(out),
	)

	return out, nil
}
