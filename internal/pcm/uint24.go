package pcm

import (
	"fmt"
	"strconv"
)

// MaxUint24 is the largest value representable by Uint24.
const MaxUint24 = 1<<24 - 1

// Uint24 is an unsigned 24-bit integer stored as three little-endian bytes.
type Uint24 [3]byte

// NewUint24 narrows v to 24 bits. Out-of-range input is truncated, or panics
// when built with the pcmdebug tag.
func NewUint24(v uint32) Uint24 {
	if debugChecks && v > MaxUint24 {
		panic(fmt.Sprintf("pcm: %d outside uint24 range [0, %d]", v, MaxUint24))
	}

	return Uint24FromUint32(v)
}

// CheckedUint24 is like NewUint24 but returns ErrSampleOverflow instead of
// truncating.
func CheckedUint24(v uint32) (Uint24, error) {
	if v > MaxUint24 {
		return Uint24{}, fmt.Errorf("%w: %d not in [0, %d]", ErrSampleOverflow, v, MaxUint24)
	}

	return Uint24FromUint32(v), nil
}

// Uint24FromUint32 keeps the low 24 bits of v.
func Uint24FromUint32(v uint32) Uint24 {
	return Uint24{byte(v), byte(v >> 8), byte(v >> 16)}
}

// Uint32 zero-extends v to 32 bits.
func (v Uint24) Uint32() uint32 {
	return uint32(v[0]) | uint32(v[1])<<8 | uint32(v[2])<<16
}

// Bytes returns the little-endian encoding of v.
func (v Uint24) Bytes() [3]byte { return v }

// PutLE writes v into b[0:3]. It panics if len(b) < 3.
func (v Uint24) PutLE(b []byte) {
	_ = b[2]
	b[0], b[1], b[2] = v[0], v[1], v[2]
}

func (v Uint24) String() string { return strconv.FormatUint(uint64(v.Uint32()), 10) }

func (v Uint24) Add(o Uint24) Uint24 { return Uint24FromUint32(v.Uint32() + o.Uint32()) }
func (v Uint24) Sub(o Uint24) Uint24 { return Uint24FromUint32(v.Uint32() - o.Uint32()) }
func (v Uint24) Mul(o Uint24) Uint24 { return Uint24FromUint32(v.Uint32() * o.Uint32()) }

// Div panics if o is zero.
func (v Uint24) Div(o Uint24) Uint24 { return Uint24FromUint32(v.Uint32() / o.Uint32()) }

// Rem panics if o is zero.
func (v Uint24) Rem(o Uint24) Uint24 { return Uint24FromUint32(v.Uint32() % o.Uint32()) }

func (v *Uint24) AddAssign(o Uint24) { *v = v.Add(o) }
func (v *Uint24) SubAssign(o Uint24) { *v = v.Sub(o) }
func (v *Uint24) MulAssign(o Uint24) { *v = v.Mul(o) }
func (v *Uint24) DivAssign(o Uint24) { *v = v.Div(o) }
func (v *Uint24) RemAssign(o Uint24) { *v = v.Rem(o) }
