package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDivisionByZero    = errors.New("cannot divide by zero")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect old password")
	// ErrWeakPassword is an invalid-argument error: errors.Is matches both.
	ErrWeakPassword = fmt.Errorf("%w: password does not satisfy the strength policy", ErrInvalidArgument)
)

// ArgumentError reports which argument of which operation was rejected.
type ArgumentError struct {
	Op     string
	Arg    string
	Reason string
	// Kind is the sentinel this error matches. Defaults to ErrInvalidArgument.
	Kind error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: input %s %s", e.Op, e.Arg, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	if e.Kind == nil {
		return ErrInvalidArgument
	}
	return e.Kind
}

// InvalidArgument builds an ArgumentError of kind ErrInvalidArgument.
func InvalidArgument(op, arg, reason string) error {
	return &ArgumentError{Op: op, Arg: arg, Reason: reason}
}
