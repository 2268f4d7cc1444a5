package wave

import "errors"

var (
	// ErrDimensionMismatch reports a supplied map whose shape differs from the grid.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidShape reports a source row that does not carry exactly five fields.
	ErrInvalidShape = errors.New("invalid source shape")

	// ErrInvalidSize reports a non-positive grid dimension.
	ErrInvalidSize = errors.New("invalid grid size")
)
