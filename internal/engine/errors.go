package engine

import "errors"

var (
	ErrSizeMismatch   = errors.New("engine: board size mismatch")
	ErrMalformedState = errors.New("engine: malformed saved state")
)
