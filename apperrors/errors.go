// Package apperrors defines the error kinds shared by the ingestion, query
// and statistics components.
package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrSourceNotFound = errors.New("source not found")
	ErrParse          = errors.New("parse error")
	ErrStore          = errors.New("store error")
	ErrValidation     = errors.New("validation error")
	ErrArithmetic     = errors.New("arithmetic error")
	ErrUnexpected     = errors.New("unexpected error")
)

// Error is a classified error. Kind is one of the sentinels above and Err
// is the underlying cause, if any.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

func SourceNotFound(cause error, format string, args ...any) error {
	return newError(ErrSourceNotFound, cause, format, args...)
}

func Parse(cause error, format string, args ...any) error {
	return newError(ErrParse, cause, format, args...)
}

func Store(cause error, format string, args ...any) error {
	return newError(ErrStore, cause, format, args...)
}

func Validation(cause error, format string, args ...any) error {
	return newError(ErrValidation, cause, format, args...)
}

func Arithmetic(cause error, format string, args ...any) error {
	return newError(ErrArithmetic, cause, format, args...)
}

func Unexpected(cause error, format string, args ...any) error {
	return newError(ErrUnexpected, cause, format, args...)
}

// KindOf returns the kind of err, or ErrUnexpected when err is not classified.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrUnexpected
}

// Classify leaves classified errors alone and wraps anything else with kind.
func Classify(err, kind error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return newError(kind, err, format, args...)
}
