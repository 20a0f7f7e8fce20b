package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/example/go-wavtone/internal/sample"
	"github.com/example/go-wavtone/internal/signal"
	"github.com/example/go-wavtone/internal/testutil"
)

func toneParams(duration float64, channels uint16) Params {
	return Params{
		Params: signal.Params{
			Duration:   duration,
			Frequency:  440,
			Amplitude:  1,
			SampleRate: 44100,
		},
		Channels: channels,
	}
}

func TestEncodeLength(t *testing.T) {
	reg := DefaultRegistry()

	for _, enc := range reg.Encoders() {
		f := enc.Format()
		for _, ch := range []uint16{1, 2} {
			t.Run(fmt.Sprintf("%s/%dch", f.Name(), ch), func(t *testing.T) {
				p := toneParams(0.25, ch)

				data, err := enc.Encode(p)
				if err != nil {
					t.Fatalf("Encode(): %v", err)
				}

				wantPayload := p.NumSamples() * int(ch) * f.Size()
				if len(data) != HeaderSize+wantPayload {
					t.Fatalf("len = %d; want %d", len(data), HeaderSize+wantPayload)
				}
				if got := binary.LittleEndian.Uint32(data[40:44]); int(got) != wantPayload {
					t.Fatalf("data size = %d; want %d", got, wantPayload)
				}
				if got := binary.LittleEndian.Uint32(data[4:8]); int(got) != len(data)-8 {
					t.Fatalf("RIFF size = %d; want %d", got, len(data)-8)
				}
				if got := binary.LittleEndian.Uint16(data[34:36]); got != f.BitsPerSample() {
					t.Fatalf("bits = %d; want %d", got, f.BitsPerSample())
				}
			})
		}
	}
}

func TestEncodeU8OneSecond(t *testing.T) {
	data, err := Encode(sample.Uint8, toneParams(1, 1))
	if err != nil {
		t.Fatalf("Encode(): %v", err)
	}

	if len(data) != 44144 {
		t.Fatalf("len = %d; want 44144", len(data))
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != 44136 {
		t.Fatalf("RIFF size = %d; want 44136", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 44100 {
		t.Fatalf("byte rate = %d; want 44100", got)
	}
	if got := binary.LittleEndian.Uint16(data[32:34]); got != 1 {
		t.Fatalf("block align = %d; want 1", got)
	}
	if got := data[HeaderSize]; got != 127 {
		t.Fatalf("first sample = %d; want 127", got)
	}
}

func TestEncodeI16TwoSeconds(t *testing.T) {
	data, err := Encode(sample.Int16, toneParams(2, 1))
	if err != nil {
		t.Fatalf("Encode(): %v", err)
	}

	if got := binary.LittleEndian.Uint32(data[40:44]); got != 176400 {
		t.Fatalf("data size = %d; want 176400", got)
	}
	if got := int16(binary.LittleEndian.Uint16(data[HeaderSize:])); got != 0 {
		t.Fatalf("first sample = %d; want 0", got)
	}

	// A quarter period of 440 Hz at 44100 Hz lands near the positive peak.
	peak := 0
	for i := range 100 {
		v := int(int16(binary.LittleEndian.Uint16(data[HeaderSize+2*i:])))
		peak = max(peak, v)
	}
	if peak < 32000 {
		t.Fatalf("peak over first 100 samples = %d; want near %d", peak, math.MaxInt16)
	}
}

func TestEncodeZeroDuration(t *testing.T) {
	data, err := Encode(sample.Float32, toneParams(0, 1))
	if err != nil {
		t.Fatalf("Encode(): %v", err)
	}
	if len(data) != HeaderSize {
		t.Fatalf("len = %d; want %d", len(data), HeaderSize)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != 0 {
		t.Fatalf("data size = %d; want 0", got)
	}
}

func TestEncodeDuplicatesChannels(t *testing.T) {
	data, err := Encode(sample.Int24, toneParams(0.01, 3))
	if err != nil {
		t.Fatalf("Encode(): %v", err)
	}

	payload := data[HeaderSize:]
	for off := 0; off < len(payload); off += 9 {
		frame := payload[off : off+9]
		for ch := 1; ch < 3; ch++ {
			if string(frame[ch*3:ch*3+3]) != string(frame[:3]) {
				t.Fatalf("frame at %d: channel %d = % x; want % x", off/9, ch, frame[ch*3:ch*3+3], frame[:3])
			}
		}
	}
}

func TestEncodeFloat32Samples(t *testing.T) {
	p := toneParams(0.01, 1)

	data, err := Encode(sample.Float32, p)
	if err != nil {
		t.Fatalf("Encode(): %v", err)
	}

	src := p.Sine()
	for i := range p.NumSamples() {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[HeaderSize+4*i:]))
		if want := src.At(i); got != want {
			t.Fatalf("sample %d = %v; want %v", i, got, want)
		}
	}
}

func TestEncodeRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"zero channels", func(p *Params) { p.Channels = 0 }, ErrInvalidChannels},
		{"too many channels", func(p *Params) { p.Channels = math.MaxUint16 }, ErrInvalidChannels},
		{"amplitude", func(p *Params) { p.Amplitude = 2 }, signal.ErrInvalidAmplitude},
		{"negative duration", func(p *Params) { p.Duration = -1 }, signal.ErrInvalidDuration},
		{"byte rate overflow", func(p *Params) {
			p.SampleRate = math.MaxUint32
			p.Duration = 0
		}, signal.ErrInvalidSampleRate},
		{"payload too large", func(p *Params) {
			p.SampleRate = 192000
			p.Duration = 6000
		}, ErrPayloadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := toneParams(1, 1)
			tt.mutate(&p)

			data, err := Encode(sample.Int32, p)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Encode() error = %v; want %v", err, tt.want)
			}
			if data != nil {
				t.Fatalf("Encode() returned %d bytes on error", len(data))
			}
		})
	}
}

func TestPayloadSize(t *testing.T) {
	p := toneParams(1, 2)
	if got := p.PayloadSize(sample.Int24); got != 44100*2*3 {
		t.Fatalf("PayloadSize() = %d; want %d", got, 44100*2*3)
	}
}

func BenchmarkEncodeI16(b *testing.B) {
	p := toneParams(1, 1)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Encode(sample.Int16, p); err != nil {
			b.Fatal(err)
		}
	}
}

func TestEncodeSignalMatchesEncode(t *testing.T) {
	p := toneParams(0.05, 2)

	want, err := Encode(sample.Uint16, p)
	if err != nil {
		t.Fatalf("Encode(): %v", err)
	}

	raw := signal.Generate(p.Sine(), p.NumSamples())
	got, err := NewEncoder(sample.Uint16).EncodeSignal(p, raw)
	if err != nil {
		t.Fatalf("EncodeSignal(): %v", err)
	}

	if string(got) != string(want) {
		t.Fatal("EncodeSignal output differs from Encode")
	}

	if _, err := EncodeSignal(sample.Uint16, p, raw[1:]); err == nil {
		t.Fatal("EncodeSignal() accepted a short signal")
	}
}

func TestEncodeLongToneIsValid(t *testing.T) {
	testutil.RequireLong(t)

	p := toneParams(60, 2)
	data, err := Encode(sample.Float32, p)
	if err != nil {
		t.Fatalf("Encode(): %v", err)
	}

	testutil.AssertValidWAV(t, data, testutil.Layout{SampleRate: 44100, Channels: 2, BitsPerSample: 32})
	testutil.AssertWAVDurationApprox(t, data, 59.99, 60.01)
}
