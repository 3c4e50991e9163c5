package trend

import (
	"errors"
	"fmt"
)

// ErrInvalidData indicates a data point that is not a finite number.
var ErrInvalidData = errors.New("invalid data point")

// ErrGradientStops indicates a gradient without exactly 2 or 3 stops.
var ErrGradientStops = errors.New("gradient needs 2 or 3 stops")

// ErrInvalidColor indicates a color that is neither hex nor a known name.
var ErrInvalidColor = errors.New("invalid color")

// ErrInvalidDimension indicates a negative size or a padding that leaves no drawing area.
var ErrInvalidDimension = errors.New("invalid dimension")

// ErrInvalidRadius indicates a negative smoothing radius.
var ErrInvalidRadius = errors.New("invalid radius")

// ErrInvalidAnimation indicates a non-positive duration or an empty easing name.
var ErrInvalidAnimation = errors.New("invalid auto-draw animation")

// ErrUnknownPolicy indicates a marker policy name that is not registered.
var ErrUnknownPolicy = errors.New("unknown marker policy")

// OptionError reports which option failed validation.
type OptionError struct {
	Option string
	Err    error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("option %q: %v", e.Option, e.Err)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

// NewOptionError creates a new OptionError.
func NewOptionError(option string, err error) *OptionError {
	return &OptionError{
		Option: option,
		Err:    err,
	}
}

// ErrInvalidID indicates an instance id that is not usable in CSS selectors.
var ErrInvalidID = errors.New("invalid instance id")
