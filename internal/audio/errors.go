package audio

import "errors"

var (
	// ErrUnsizedHeader is returned when a header is serialized before its
	// data size is known.
	ErrUnsizedHeader = errors.New("WAV header serialized before data size was set")

	ErrInvalidChannels = errors.New("invalid channel count")
	ErrPayloadTooLarge = errors.New("payload exceeds 32-bit RIFF size limit")

	// ErrFormatMismatch is returned when decoded output does not match the
	// layout it was encoded with.
	ErrFormatMismatch = errors.New("WAV format mismatch")
)
