// Package pcm provides packed integer types for sample widths that have no
// native Go counterpart.
//
// Int24 and Uint24 occupy exactly three bytes, little-endian, and are always
// passed by value. Arithmetic widens both operands to 32 bits, computes, and
// narrows the result back to the low 24 bits, which is modular arithmetic in
// the 24-bit domain: MaxInt24 + 1 == MinInt24 and 0 - 1 == MaxUint24.
//
// Narrowing is silent by default. NewInt24 and NewUint24 panic on
// out-of-range input only when the package is built with the pcmdebug tag;
// CheckedInt24 and CheckedUint24 report ErrSampleOverflow instead.
package pcm
