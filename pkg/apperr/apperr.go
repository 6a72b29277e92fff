// Package apperr описывает таксономию ошибок сервиса: каждая доменная ошибка
// несёт Kind, по которому HTTP-слой выбирает код ответа.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindTransient
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	case KindAuth:
		return "auth"
	default:
		return "internal"
	}
}

// Error is a classified error. Sentinel values are compared by identity, so
// errors.Is(err, interview.ErrSessionExpired) works through %w wrapping.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Fields holds per-field validation details.
	Fields map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Fields)
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error { return New(KindValidation, code, message) }
func Conflict(code, message string) *Error   { return New(KindConflict, code, message) }
func NotFound(code, message string) *Error   { return New(KindNotFound, code, message) }
func Transient(code, message string) *Error  { return New(KindTransient, code, message) }
func Auth(code, message string) *Error       { return New(KindAuth, code, message) }

// InvalidFields builds a validation error with per-field details.
func InvalidFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_FAILED", Message: "validation failed", Fields: fields}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf classifies err; unclassified errors are internal.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}
