package pcm

import (
	"errors"
	"testing"
	"unsafe"
)

func TestInt24Size(t *testing.T) {
	if got := unsafe.Sizeof(Int24{}); got != 3 {
		t.Fatalf("sizeof(Int24) = %d; want 3", got)
	}
	if got := unsafe.Sizeof(Uint24{}); got != 3 {
		t.Fatalf("sizeof(Uint24) = %d; want 3", got)
	}
}

func TestInt24RoundTrip(t *testing.T) {
	t.Parallel()

	for x := int32(MinInt24); x <= MaxInt24; x += 997 {
		if got := Int24FromInt32(x).Int32(); got != x {
			t.Fatalf("Int24FromInt32(%d).Int32() = %d", x, got)
		}
	}

	for _, x := range []int32{MinInt24, MinInt24 + 1, -1, 0, 1, MaxInt24 - 1, MaxInt24} {
		if got := Int24FromInt32(x).Int32(); got != x {
			t.Errorf("Int24FromInt32(%d).Int32() = %d", x, got)
		}
	}
}

func TestInt24LittleEndianLayout(t *testing.T) {
	tests := []struct {
		name string
		in   int32
		want [3]byte
	}{
		{"zero", 0, [3]byte{0x00, 0x00, 0x00}},
		{"one", 1, [3]byte{0x01, 0x00, 0x00}},
		{"minus one", -1, [3]byte{0xff, 0xff, 0xff}},
		{"max", MaxInt24, [3]byte{0xff, 0xff, 0x7f}},
		{"min", MinInt24, [3]byte{0x00, 0x00, 0x80}},
		{"mixed", 0x123456, [3]byte{0x56, 0x34, 0x12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Int24FromInt32(tt.in)
			if v.Bytes() != tt.want {
				t.Fatalf("Bytes() = % x; want % x", v.Bytes(), tt.want)
			}

			buf := make([]byte, 4)
			v.PutLE(buf)
			if buf[0] != tt.want[0] || buf[1] != tt.want[1] || buf[2] != tt.want[2] || buf[3] != 0 {
				t.Fatalf("PutLE wrote % x; want % x 00", buf, tt.want)
			}
		})
	}
}

func TestInt24FromInt32DropsTopByte(t *testing.T) {
	if got := Int24FromInt32(0x7f123456).Int32(); got != 0x123456 {
		t.Fatalf("got %#x; want 0x123456", got)
	}
	if got := Int24FromInt32(MaxInt24 + 1).Int32(); got != MinInt24 {
		t.Fatalf("MaxInt24+1 narrowed to %d; want %d", got, MinInt24)
	}
}

func TestNewInt24Truncates(t *testing.T) {
	if debugChecks {
		t.Skip("pcmdebug build asserts instead of truncating")
	}

	if got := NewInt24(1 << 23).Int32(); got != MinInt24 {
		t.Fatalf("NewInt24(1<<23) = %d; want %d", got, MinInt24)
	}
}

func TestCheckedInt24(t *testing.T) {
	tests := []struct {
		name    string
		in      int32
		wantErr bool
	}{
		{"min", MinInt24, false},
		{"max", MaxInt24, false},
		{"zero", 0, false},
		{"above max", MaxInt24 + 1, true},
		{"below min", MinInt24 - 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := CheckedInt24(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrSampleOverflow) {
					t.Fatalf("CheckedInt24(%d) error = %v; want ErrSampleOverflow", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CheckedInt24(%d) error: %v", tt.in, err)
			}
			if v.Int32() != tt.in {
				t.Fatalf("CheckedInt24(%d) = %d", tt.in, v.Int32())
			}
		})
	}
}

func TestInt24Arithmetic(t *testing.T) {
	n := func(v int32) Int24 { return Int24FromInt32(v) }

	tests := []struct {
		name string
		got  Int24
		want int32
	}{
		{"add", n(1000).Add(n(-250)), 750},
		{"sub", n(-5).Sub(n(10)), -15},
		{"mul", n(-300).Mul(n(7)), -2100},
		{"div truncates toward zero", n(-7).Div(n(2)), -3},
		{"rem sign of dividend", n(-7).Rem(n(2)), -1},
		{"add wraps at 24 bits", n(MaxInt24).Add(n(1)), MinInt24},
		{"sub wraps at 24 bits", n(MinInt24).Sub(n(1)), MaxInt24},
		{"mul wraps at 24 bits", n(1 << 22).Mul(n(2)), MinInt24},
		{"large add wraps", n(MaxInt24).Add(n(MaxInt24)), -2},
		{"min div minus one wraps", n(MinInt24).Div(n(-1)), MinInt24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.Int32(); got != tt.want {
				t.Fatalf("got %d; want %d", got, tt.want)
			}
		})
	}
}

func TestInt24AssignOps(t *testing.T) {
	v := Int24FromInt32(10)

	v.AddAssign(Int24FromInt32(5))
	v.MulAssign(Int24FromInt32(-4))
	v.SubAssign(Int24FromInt32(4))
	v.DivAssign(Int24FromInt32(8))
	if v.Int32() != -8 {
		t.Fatalf("after add/mul/sub/div got %d; want -8", v.Int32())
	}

	v.RemAssign(Int24FromInt32(3))
	if v.Int32() != -2 {
		t.Fatalf("after rem got %d; want -2", v.Int32())
	}

	w := Int24FromInt32(MaxInt24)
	w.AddAssign(Int24FromInt32(1))
	if w.Int32() != MinInt24 {
		t.Fatalf("AddAssign overflow got %d; want %d", w.Int32(), MinInt24)
	}
}

func TestInt24DivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on division by zero")
		}
	}()

	_ = Int24FromInt32(1).Div(Int24{})
}

func TestInt24String(t *testing.T) {
	if got := Int24FromInt32(-42).String(); got != "-42" {
		t.Fatalf("String() = %q; want %q", got, "-42")
	}
}

func BenchmarkInt24RoundTrip(b *testing.B) {
	var sink int32

	b.ReportAllocs()

	for i := range b.N {
		sink += Int24FromInt32(int32(i)).Int32()
	}

	_ = sink
}
