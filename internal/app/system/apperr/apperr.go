// internal/app/system/apperr/apperr.go

// Package apperr defines the typed error kinds the core surfaces to the
// transport layer: AccessDenied, NotFound, and InvalidArgument. The
// transport maps kinds to responses; the core never retries and never
// swallows errors beyond the normalizer's documented tolerant cases.
package apperr

import (
	"errors"
	"fmt"
)

// InsufficientPrivileges is the fixed message carried by every
// AccessDenied error. Callers must not see partial data alongside it.
const InsufficientPrivileges = "insufficient privileges"

// Kind classifies an Error.
type Kind int

const (
	// AccessDenied: the requester lacks the role the view requires.
	AccessDenied Kind = iota
	// NotFound: the grouping path does not resolve.
	NotFound
	// InvalidArgument: malformed schema or attribute-name mismatch.
	// Pagination nulls are valid "disable" signals, never this.
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case AccessDenied:
		return "access_denied"
	case NotFound:
		return "not_found"
	case InvalidArgument:
		return "invalid_argument"
	}
	return "unknown"
}

// Error is a kinded error. Message is user-facing; Err, when set, is
// the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Denied returns the AccessDenied error with the fixed message.
func Denied() *Error {
	return &Error{Kind: AccessDenied, Message: InsufficientPrivileges}
}

// NotFoundf returns a NotFound error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgumentf returns an InvalidArgument error with a formatted message.
func InvalidArgumentf(format string, args ...any) *Error {
	return &Error{Kind: InvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err and whether err carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsAccessDenied reports whether err is an AccessDenied error.
func IsAccessDenied(err error) bool { k, ok := KindOf(err); return ok && k == AccessDenied }

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { k, ok := KindOf(err); return ok && k == NotFound }

// IsInvalidArgument reports whether err is an InvalidArgument error.
func IsInvalidArgument(err error) bool { k, ok := KindOf(err); return ok && k == InvalidArgument }
