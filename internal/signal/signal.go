// Package signal produces normalized test signals and adapts them to a sample
// representation.
package signal

import (
	"fmt"
	"math"
)

// Params describes a fixed-length tone.
type Params struct {
	Duration   float64 // seconds
	Frequency  float64 // Hz
	Amplitude  float64 // peak, |Amplitude| <= 1
	SampleRate float64 // Hz
}

// Validate reports the first parameter that would make generation produce
// values outside [-1, 1] or a malformed sample count.
func (p Params) Validate() error {
	if math.IsNaN(p.Amplitude) || math.Abs(p.Amplitude) > 1 {
		return fmt.Errorf("%w: %v (want |amplitude| <= 1)", ErrInvalidAmplitude, p.Amplitude)
	}
	if math.IsNaN(p.Duration) || math.IsInf(p.Duration, 0) || p.Duration < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, p.Duration)
	}
	if math.IsNaN(p.SampleRate) || math.IsInf(p.SampleRate, 0) || p.SampleRate < 1 || p.SampleRate > math.MaxUint32 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, p.SampleRate)
	}
	if p.SampleRate*p.Duration > math.MaxUint32 {
		return fmt.Errorf("%w: %v s at %v Hz exceeds %d samples", ErrInvalidDuration, p.Duration, p.SampleRate, uint32(math.MaxUint32))
	}
	if math.IsNaN(p.Frequency) || math.IsInf(p.Frequency, 0) || p.Frequency < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, p.Frequency)
	}

	return nil
}

// NumSamples is floor(SampleRate × Duration).
func (p Params) NumSamples() int {
	return int(math.Floor(p.SampleRate * p.Duration))
}

// Sine returns the sine source described by p.
func (p Params) Sine() Sine {
	return Sine{Frequency: p.Frequency, Amplitude: p.Amplitude, SampleRate: p.SampleRate}
}

// Source yields the normalized value of sample i.
type Source interface {
	At(i int) float32
}

// SourceFunc adapts a function to Source.
type SourceFunc func(i int) float32

func (f SourceFunc) At(i int) float32 { return f(i) }

// Sine is a sine oscillator starting at phase zero.
type Sine struct {
	Frequency  float64
	Amplitude  float64
	SampleRate float64
}

func (s Sine) At(i int) float32 {
	phase := float64(i) * s.Frequency / s.SampleRate
	return float32(math.Sin(2*math.Pi*phase) * s.Amplitude)
}

// Generate materializes the first n samples of src.
func Generate(src Source, n int) []float32 {
	if n <= 0 {
		return []float32{}
	}

	out := make([]float32, n)
	for i := range out {
		out[i] = src.At(i)
	}

	return out
}

// Convert adapts every raw sample through fn, typically a sample codec's
// FromSignal.
func Convert[T any](raw []float32, fn func(float32) T) []T {
	out := make([]T, len(raw))
	for i, x := range raw {
		out[i] = fn(x)
	}

	return out
}

// GenerateAs generates n samples of src already converted by fn.
func GenerateAs[T any](src Source, n int, fn func(float32) T) []T {
	return Convert(Generate(src, n), fn)
}
