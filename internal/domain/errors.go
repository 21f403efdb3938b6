package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failure surfaced by the adapter.
type ErrorKind string

const (
	// KindValidation means the caller supplied a bad argument; nothing was sent.
	KindValidation ErrorKind = "validation"
	// KindNetwork means the transport failed or the backend answered non-2xx.
	KindNetwork ErrorKind = "network"
	// KindDeserialization means the body did not decode into the expected record.
	KindDeserialization ErrorKind = "deserialization"
)

// Sentinels for errors.Is matching on the kind alone.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNetwork         = &Error{Kind: KindNetwork}
	ErrDeserialization = &Error{Kind: KindDeserialization}
)

// Error is the single failure type of the adapter.
// Kind is the discriminant; Msg and the wrapped Err are diagnostics only.
type Error struct {
	Kind       ErrorKind
	Op         string // e.g. "GetByID", "FetchPage"
	URL        string
	StatusCode int
	Msg        string
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(" error")
	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so the kind sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || e == nil {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Msg == "" && t.Err == nil
}

// KindOf extracts the kind of err; it returns "" if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// NewValidationError builds a KindValidation error for op.
func NewValidationError(op, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Op: op, Msg: fmt.Sprintf(format, args...)}
}
