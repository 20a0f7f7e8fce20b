package pcm

import (
	"fmt"
	"strconv"
)

// Bounds of the signed 24-bit domain.
const (
	MinInt24 = -1 << 23
	MaxInt24 = 1<<23 - 1
)

// Int24 is a signed 24-bit integer stored as three little-endian bytes.
type Int24 [3]byte

// NewInt24 narrows v to 24 bits. Out-of-range input is truncated, or panics
// when built with the pcmdebug tag.
func NewInt24(v int32) Int24 {
	if debugChecks && (v < MinInt24 || v > MaxInt24) {
		panic(fmt.Sprintf("pcm: %d outside int24 range [%d, %d]", v, MinInt24, MaxInt24))
	}

	return Int24FromInt32(v)
}

// CheckedInt24 is like NewInt24 but returns ErrSampleOverflow instead of
// truncating.
func CheckedInt24(v int32) (Int24, error) {
	if v < MinInt24 || v > MaxInt24 {
		return Int24{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrSampleOverflow, v, MinInt24, MaxInt24)
	}

	return Int24FromInt32(v), nil
}

// Int24FromInt32 keeps the low 24 bits of v.
func Int24FromInt32(v int32) Int24 {
	return Int24{byte(v), byte(v >> 8), byte(v >> 16)}
}

// Int32 sign-extends v to 32 bits.
func (v Int24) Int32() int32 {
	u := uint32(v[0]) | uint32(v[1])<<8 | uint32(v[2])<<16
	return int32(u<<8) >> 8
}

// Bytes returns the little-endian encoding of v.
func (v Int24) Bytes() [3]byte { return v }

// PutLE writes v into b[0:3]. It panics if len(b) < 3.
func (v Int24) PutLE(b []byte) {
	_ = b[2]
	b[0], b[1], b[2] = v[0], v[1], v[2]
}

func (v Int24) String() string { return strconv.FormatInt(int64(v.Int32()), 10) }

func (v Int24) Add(o Int24) Int24 { return Int24FromInt32(v.Int32() + o.Int32()) }
func (v Int24) Sub(o Int24) Int24 { return Int24FromInt32(v.Int32() - o.Int32()) }
func (v Int24) Mul(o Int24) Int24 { return Int24FromInt32(v.Int32() * o.Int32()) }

// Div truncates toward zero. It panics if o is zero.
func (v Int24) Div(o Int24) Int24 { return Int24FromInt32(v.Int32() / o.Int32()) }

// Rem has the sign of v. It panics if o is zero.
func (v Int24) Rem(o Int24) Int24 { return Int24FromInt32(v.Int32() % o.Int32()) }

func (v *Int24) AddAssign(o Int24) { *v = v.Add(o) }
func (v *Int24) SubAssign(o Int24) { *v = v.Sub(o) }
func (v *Int24) MulAssign(o Int24) { *v = v.Mul(o) }
func (v *Int24) DivAssign(o Int24) { *v = v.Div(o) }
func (v *Int24) RemAssign(o Int24) { *v = v.Rem(o) }
