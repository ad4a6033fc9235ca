package checked

import (
	"errors"
	"fmt"
)

// ErrArithmetic matches every failure reported by a checked operation.
var ErrArithmetic = errors.New("arithmetic failure")

// Causes of an ArithmeticError.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("overflow")
	ErrExponentRange  = errors.New("exponent out of range")
)

// ArithmeticError describes a failed checked operation.
type ArithmeticError struct {
	Op  string
	Err error
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrArithmetic, e.Op, e.Err)
}

func (e *ArithmeticError) Unwrap() error {
	return e.Err
}

// Is reports ErrArithmetic as a match so callers need not know the cause.
func (e *ArithmeticError) Is(target error) bool {
	return target == ErrArithmetic
}

func fail(op string, err error) error {
	var ae *ArithmeticError
	if errors.As(err, &ae) {
		return ae
	}
	return &ArithmeticError{Op: op, Err: err}
}
