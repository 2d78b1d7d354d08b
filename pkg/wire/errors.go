package wire

import "errors"

var (
	ErrMissingPrefix = errors.New("wire.missing_prefix")
	ErrInvalidHex    = errors.New("wire.invalid_hex")
	ErrMalformed     = errors.New("wire.malformed")
	ErrUnsupported   = errors.New("wire.unsupported_value")
)
