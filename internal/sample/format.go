// Package sample defines the sample representations wavtone can emit and the
// conversion from a normalized signal value in [-1, 1] to each of them.
package sample

import (
	"fmt"
	"math"
	"strings"
)

// Format describes one sample representation.
type Format interface {
	// Name is the short identifier used on the command line, e.g. "i16".
	Name() string
	// BitsPerSample is the value written to the WAV fmt chunk.
	BitsPerSample() uint16
	// Size is the number of bytes one sample occupies in the data chunk.
	Size() int
	// Bounds is the representable range; [-1, 1] for floating point.
	Bounds() (lo, hi float64)
}

// Codec is the conversion contract for samples of type T.
//
// FromSignal expects x in [-1, 1]; callers are responsible for keeping the
// signal in range. PutLE writes v little-endian into b[:Size()].
type Codec[T any] interface {
	Format
	FromSignal(x float32) T
	PutLE(b []byte, v T)
}

// All returns every built-in format, narrowest first.
func All() []Format {
	return []Format{Uint8, Uint16, Int16, Uint24, Int24, Uint32, Int32, Float32}
}

var aliases = map[string]string{
	"uint8":   "u8",
	"uint16":  "u16",
	"int16":   "i16",
	"uint24":  "u24",
	"int24":   "i24",
	"uint32":  "u32",
	"int32":   "i32",
	"float32": "f32",
	"float":   "f32",
}

// Lookup resolves a format by name. Matching is case-insensitive and accepts
// Go-style aliases such as "int16".
func Lookup(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}

	for _, f := range All() {
		if f.Name() == key {
			return f, nil
		}
	}

	return nil, fmt.Errorf("%w %q (expected %s)", ErrUnknownFormat, name, strings.Join(Names(), "|"))
}

// Names returns the names of All in order.
func Names() []string {
	formats := All()

	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name()
	}

	return names
}

// unsignedLevel maps x onto [0, hi] as hi × (x × 0.5 + 0.5).
func unsignedLevel(x float32, hi float64) float64 {
	return saturate(hi*(float64(x)*0.5+0.5), 0, hi)
}

// signedLevel maps x onto [lo, hi] as (hi − lo) × (x × 0.5 + 0.5) + lo.
func signedLevel(x float32, lo, hi float64) float64 {
	return saturate((hi-lo)*(float64(x)*0.5+0.5)+lo, lo, hi)
}

// saturate keeps v inside [lo, hi] so the integer conversion that follows is
// well defined. NaN maps to lo.
func saturate(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
