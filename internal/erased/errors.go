package erased

import (
	"errors"
	"fmt"
)

var (
	// ErrArityMismatch is matched by errors returned when a call receives a
	// different number of arguments than the adapted function declares.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrTypeMismatch is matched by errors returned when an argument or a
	// return value cannot be converted between its erased and native forms.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNativePanic is matched by errors produced from a panic raised inside
	// a native function during an erased call.
	ErrNativePanic = errors.New("native function panicked")
)

// Positions used by ConversionError.Index that do not name an argument.
const (
	ReturnIndex = -1
	ValueIndex  = -2
)

// ArityError reports an argument count mismatch.
type ArityError struct {
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("arity mismatch: expected %d argument(s), got %d", e.Want, e.Got)
}

func (e *ArityError) Unwrap() error {
	return ErrArityMismatch
}

// ConversionError reports a value that could not be converted. Index is the
// zero-based argument position, ReturnIndex for a return value, or
// ValueIndex when the conversion was requested outside of a call.
type ConversionError struct {
	Index int
	Want  string
	Got   string
	Err   error
}

func (e *ConversionError) Error() string {
	var where string
	switch e.Index {
	case ReturnIndex:
		where = "return value"
	case ValueIndex:
		where = "value"
	default:
		where = fmt.Sprintf("argument %d", e.Index)
	}
	if e.Err != nil {
		return fmt.Sprintf("type mismatch: %s: cannot convert %s to %s: %v", where, e.Got, e.Want, e.Err)
	}
	return fmt.Sprintf("type mismatch: %s: cannot convert %s to %s", where, e.Got, e.Want)
}

func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTypeMismatch}
	}
	return []error{ErrTypeMismatch, e.Err}
}

// at returns a copy of err positioned at index when err is a ConversionError.
func at(err error, index int) error {
	var ce *ConversionError
	if !errors.As(err, &ce) {
		return err
	}
	positioned := *ce
	positioned.Index = index
	return &positioned
}

// PanicError carries the value recovered from a panicking native call.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("native function panicked: %v", e.Value)
}

func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrNativePanic, err}
	}
	return []error{ErrNativePanic}
}

// Recovered converts a value obtained from recover into an error.
func Recovered(r any) error {
	return &PanicError{Value: r}
}
