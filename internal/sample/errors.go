package sample

import "errors"

// ErrUnknownFormat is returned by Lookup for names that match no format.
var ErrUnknownFormat = errors.New("unknown sample format")
