package sample

import (
	"encoding/binary"
	"math"

	"github.com/example/go-wavtone/internal/pcm"
)

// Built-in codecs.
var (
	Uint8   = U8{}
	Uint16  = U16{}
	Int16   = I16{}
	Uint24  = U24{}
	Int24   = I24{}
	Uint32  = U32{}
	Int32   = I32{}
	Float32 = F32{}
)

var (
	_ Codec[uint8]      = U8{}
	_ Codec[uint16]     = U16{}
	_ Codec[int16]      = I16{}
	_ Codec[pcm.Uint24] = U24{}
	_ Codec[pcm.Int24]  = I24{}
	_ Codec[uint32]     = U32{}
	_ Codec[int32]      = I32{}
	_ Codec[float32]    = F32{}
)

// U8 is unsigned 8-bit PCM, the only unsigned width the WAV format defines.
type U8 struct{}

func (U8) Name() string { return "u8" }
func (U8) BitsPerSample() uint16 { return 8 }
func (U8) Size() int { return 1 }
func (U8) Bounds() (lo, hi float64) { return 0, math.MaxUint8 }
func (U8) FromSignal(x float32) uint8 { return uint8(unsignedLevel(x, math.MaxUint8)) }
func (U8) PutLE(b []byte, v uint8) { b[0] = v }

// U16 is unsigned 16-bit.
type U16 struct{}

func (U16) Name() string { return "u16" }
func (U16) BitsPerSample() uint16 { return 16 }
func (U16) Size() int { return 2 }
func (U16) Bounds() (lo, hi float64) { return 0, math.MaxUint16 }
func (U16) FromSignal(x float32) uint16 { return uint16(unsignedLevel(x, math.MaxUint16)) }
func (U16) PutLE(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }

// I16 is signed 16-bit, the common CD-quality width.
type I16 struct{}

func (I16) Name() string { return "i16" }
func (I16) BitsPerSample() uint16 { return 16 }
func (I16) Size() int { return 2 }
func (I16) Bounds() (lo, hi float64) { return math.MinInt16, math.MaxInt16 }
func (I16) FromSignal(x float32) int16 {
	return int16(signedLevel(x, math.MinInt16, math.MaxInt16))
}
func (I16) PutLE(b []byte, v int16) { binary.LittleEndian.PutUint16(b, uint16(v)) }

// U24 is unsigned 24-bit, packed into three bytes.
type U24 struct{}

func (U24) Name() string { return "u24" }
func (U24) BitsPerSample() uint16 { return 24 }
func (U24) Size() int { return 3 }
func (U24) Bounds() (lo, hi float64) { return 0, pcm.MaxUint24 }
func (U24) FromSignal(x float32) pcm.Uint24 {
	return pcm.NewUint24(uint32(unsignedLevel(x, pcm.MaxUint24)))
}
func (U24) PutLE(b []byte, v pcm.Uint24) { v.PutLE(b) }

// I24 is signed 24-bit, packed into three bytes.
type I24 struct{}

func (I24) Name() string { return "i24" }
func (I24) BitsPerSample() uint16 { return 24 }
func (I24) Size() int { return 3 }
func (I24) Bounds() (lo, hi float64) { return pcm.MinInt24, pcm.MaxInt24 }
func (I24) FromSignal(x float32) pcm.Int24 {
	return pcm.NewInt24(int32(signedLevel(x, pcm.MinInt24, pcm.MaxInt24)))
}
func (I24) PutLE(b []byte, v pcm.Int24) { v.PutLE(b) }

// U32 is unsigned 32-bit.
type U32 struct{}

func (U32) Name() string { return "u32" }
func (U32) BitsPerSample() uint16 { return 32 }
func (U32) Size() int { return 4 }
func (U32) Bounds() (lo, hi float64) { return 0, math.MaxUint32 }
func (U32) FromSignal(x float32) uint32 {
	return uint32(unsignedLevel(x, math.MaxUint32))
}
func (U32) PutLE(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

// I32 is signed 32-bit.
type I32 struct{}

func (I32) Name() string { return "i32" }
func (I32) BitsPerSample() uint16 { return 32 }
func (I32) Size() int { return 4 }
func (I32) Bounds() (lo, hi float64) { return math.MinInt32, math.MaxInt32 }
func (I32) FromSignal(x float32) int32 {
	return int32(signedLevel(x, math.MinInt32, math.MaxInt32))
}
func (I32) PutLE(b []byte, v int32) { binary.LittleEndian.PutUint32(b, uint32(v)) }

// F32 is 32-bit IEEE 754 floating point; the signal passes through unchanged.
type F32 struct{}

func (F32) Name() string { return "f32" }
func (F32) BitsPerSample() uint16 { return 32 }
func (F32) Size() int { return 4 }
func (F32) Bounds() (lo, hi float64) { return -1, 1 }
func (F32) FromSignal(x float32) float32 { return x }
func (F32) PutLE(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) }
