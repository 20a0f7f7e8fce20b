package config

import (
	"fmt"
	"math"

	"github.com/example/go-wavtone/internal/audio"
	"github.com/example/go-wavtone/internal/signal"
)

// Params converts the tone section to encoder parameters. Channels must fit
// the 16-bit WAV field; the remaining fields are checked by the encoder.
func (t ToneConfig) Params() (audio.Params, error) {
	if t.Channels < 1 || t.Channels > math.MaxUint16 {
		return audio.Params{}, fmt.Errorf("%w: %d", audio.ErrInvalidChannels, t.Channels)
	}

	return audio.Params{
		Params: signal.Params{
			Duration:   t.Duration,
			Frequency:  t.Frequency,
			Amplitude:  t.Amplitude,
			SampleRate: t.SampleRate,
		},
		Channels: uint16(t.Channels),
	}, nil
}
