package cli

import (
	"errors"
	"fmt"
)

// ErrInvalidArgumentCount is returned when the number of positional arguments
// does not match the command
var ErrInvalidArgumentCount = errors.New("invalid number of arguments")

// InvalidValueError reports a positional argument that is not a decimal number
// or fails its precondition
type InvalidValueError struct {
	Arg    string // Argument name from the command schema
	Token  string // Token as given on the command line
	Reason string
	Err    error // Underlying parse error, if any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s %s (got %q)", e.Arg, e.Reason, e.Token)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// Check validates a parsed value and returns an error whose message completes
// "<arg> ..." when it is rejected
type Check func(v float64) error

// Positive rejects values <= 0
func Positive() Check {
	return func(v float64) error {
		if v <= 0 {
			return errors.New("must be positive")
		}
		return nil
	}
}

// NonNegative rejects values < 0
func NonNegative() Check {
	return func(v float64) error {
		if v < 0 {
			return errors.New("cannot be negative")
		}
		return nil
	}
}

// Within rejects values outside [min, max]
func Within(min, max float64) Check {
	return func(v float64) error {
		if v < min || v > max {
			return fmt.Errorf("must be between %g and %g", min, max)
		}
		return nil
	}
}
