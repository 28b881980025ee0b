package growth

import "errors"

// Domain errors for tree growth.
var (
	// ErrNegativeLife indicates a starting life below zero.
	ErrNegativeLife = errors.New("growth: life must not be negative")

	// ErrNegativeMultiplier indicates a branching multiplier below zero.
	ErrNegativeMultiplier = errors.New("growth: multiplier must not be negative")

	// ErrEmptyPalette indicates a leaf palette with no usable glyphs.
	ErrEmptyPalette = errors.New("growth: leaf palette is empty")

	// ErrBounds indicates a canvas too small to plant a tree in.
	ErrBounds = errors.New("growth: canvas must have at least one row and column")
)

// ParamError wraps a validation error with the offending parameter.
type ParamError struct {
	Field   string
	Value   int
	Wrapped error
}

func (e *ParamError) Error() string {
	return e.Wrapped.Error()
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
