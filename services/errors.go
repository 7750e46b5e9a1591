package services

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the way callers are told about it.
type Kind int

const (
	KindUnauthorized Kind = iota + 1
	KindValidation
	KindConflict
	KindNotFound
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnexpected:
		return "unexpected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	MsgUnauthorized = "Unauthorized"
	MsgUnexpected   = "Something went wrong, please try again!"
)

// Error is the only error type returned by Service operations.
type Error struct {
	Kind   Kind
	Msg    string
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf returns the Kind carried by err, or KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// FieldsOf returns the per-field validation messages carried by err, if any.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

func IsKind(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }

// Message returns the caller-safe message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return MsgUnexpected
}

func errUnauthorized() *Error { return &Error{Kind: KindUnauthorized, Msg: MsgUnauthorized} }

func errValidation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

func errValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Msg: "Validation failed", Fields: fields}
}

func errConflict(msg string) *Error { return &Error{Kind: KindConflict, Msg: msg} }

func errNotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }
