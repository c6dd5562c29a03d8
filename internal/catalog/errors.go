package catalog

import "errors"

var (
	// ErrInvalidUnit is wrapped by every validation failure raised while
	// building an Index.
	ErrInvalidUnit = errors.New("invalid unit")
	// ErrNotFound is returned by sources asked for a unit they do not hold.
	ErrNotFound = errors.New("unit not found")
)
