package pcm

import "errors"

// ErrSampleOverflow is returned by the checked constructors when a value does
// not fit the 24-bit window.
var ErrSampleOverflow = errors.New("sample overflows 24-bit range")
