// Package errors provides structured error types for the portfolio engines.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalid
	KindStorage
	KindTransport
	KindConfig
	KindClosed
	KindBusy
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindStorage:
		return "storage error"
	case KindTransport:
		return "transport error"
	case KindConfig:
		return "configuration error"
	case KindClosed:
		return "closed"
	case KindBusy:
		return "busy"
	case KindNotFound:
		return "not found"
	default:
		return "unknown error"
	}
}

// Error is the structured error type.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Validation errors
func ValidationFailed(op Op, reason string) error {
	return E(op, KindInvalid, reason)
}

// Storage errors
func StorageFailed(op Op, key string, err error) error {
	return E(op, KindStorage, fmt.Sprintf("key %q", key), err)
}

func NotFound(op Op, key string) error {
	return E(op, KindNotFound, fmt.Sprintf("no entry with key %q", key))
}

// Transport errors
func DispatchFailed(transport string, err error) error {
	return E(Op("contact.Dispatch"), KindTransport, fmt.Sprintf("%s transport", transport), err)
}

// Lifecycle errors
func SessionClosed(op Op) error {
	return E(op, KindClosed, "session has been torn down")
}

func SubmissionInFlight() error {
	return E(Op("contact.Submit"), KindBusy, "a submission is already in flight")
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}
