package audio

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"

	"github.com/example/go-wavtone/internal/signal"
)

// Float32Buffer returns the normalized tone as an interleaved go-audio buffer
// tagged with the given source bit depth.
func Float32Buffer(p Params, bitDepth int) (*goaudio.Float32Buffer, error) {
	if err := p.Params.Validate(); err != nil {
		return nil, err
	}
	if p.Channels == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, p.Channels)
	}

	raw := signal.Generate(p.Sine(), p.NumSamples())

	data := make([]float32, 0, len(raw)*int(p.Channels))
	for _, x := range raw {
		for range p.Channels {
			data = append(data, x)
		}
	}

	return &goaudio.Float32Buffer{
		Data:           data,
		Format:         &goaudio.Format{SampleRate: int(p.SampleRate), NumChannels: int(p.Channels)},
		SourceBitDepth: bitDepth,
	}, nil
}

// EncodeReference encodes the tone with the cwbudde/wav encoder. Its
// quantization differs from Encode, but the container layout must agree,
// which makes it a useful parity check.
func EncodeReference(p Params, bitDepth int) ([]byte, error) {
	pcmBuf, err := Float32Buffer(p, bitDepth)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	// wav.NewEncoder requires an io.WriteSeeker; bytes.Buffer is not one.
	sw := &seekBuffer{buf: &buf}

	enc := wav.NewEncoder(sw, int(p.SampleRate), bitDepth, int(p.Channels), formatPCM)
	if err := enc.Write(pcmBuf); err != nil {
		return nil, fmt.Errorf("writing PCM: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// seekBuffer wraps a bytes.Buffer to satisfy io.WriteSeeker.
type seekBuffer struct {
	buf *bytes.Buffer
	pos int
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	if s.pos == s.buf.Len() {
		n, err := s.buf.Write(p)
		s.pos += n
		return n, err
	}

	// Overwrite in place, growing the buffer for any remainder.
	data := s.buf.Bytes()
	n := copy(data[s.pos:], p)
	if n < len(p) {
		s.buf.Write(p[n:])
		n = len(p)
	}
	s.pos += n
	return n, nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var newPos int
	switch whence {
	case 0: // io.SeekStart
		newPos = int(offset)
	case 1: // io.SeekCurrent
		newPos = s.pos + int(offset)
	case 2: // io.SeekEnd
		newPos = s.buf.Len() + int(offset)
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if newPos < 0 {
		return 0, fmt.Errorf("seek before start")
	}
	if newPos > s.buf.Len() {
		return 0, fmt.Errorf("seek past end (%d > %d)", newPos, s.buf.Len())
	}
	s.pos = newPos
	return int64(newPos), nil
}
