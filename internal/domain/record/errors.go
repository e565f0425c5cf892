package record

import "errors"

// Sentinel errors for record construction.
var (
	ErrDecode        = errors.New("invalid form input")
	ErrNonFinite     = errors.New("value must be a finite number")
	ErrUnknownColumn = errors.New("unknown column")
)
