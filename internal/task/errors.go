package task

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("invalid")
	ErrDateFormat      = errors.New("invalid date format")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Kind names the specific reason a value was rejected.
type Kind string

const (
	EmptyValue       Kind = "empty_value"
	InvalidFormat    Kind = "invalid_format"
	IllegalCharacter Kind = "illegal_character"
	BadRange         Kind = "bad_range"
	MixedFormats     Kind = "mixed_formats"
)

// ValidationError reports an empty or illegal field.
// It satisfies errors.Is(err, ErrValidation).
type ValidationError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "invalid"
	}
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Kind)
	}
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IndexError reports a 1-based index outside [1, size].
// It satisfies errors.Is(err, ErrIndexOutOfRange).
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	if e == nil {
		return ErrIndexOutOfRange.Error()
	}
	if e.Size == 0 {
		return fmt.Sprintf("index %d out of range, the list is empty", e.Index)
	}
	return fmt.Sprintf("index %d out of range, use 1 to %d", e.Index, e.Size)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
