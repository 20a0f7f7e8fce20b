package signal

import "errors"

var (
	ErrInvalidAmplitude  = errors.New("invalid amplitude")
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrInvalidFrequency  = errors.New("invalid frequency")
)
