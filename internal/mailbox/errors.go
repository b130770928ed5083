package mailbox

import (
	"errors"
	"fmt"
)

// Kind classifies session failures by lifecycle stage, so the retrieval
// layer can log them without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnection
	KindAuth
	KindFolder
	KindFetch
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindAuth:
		return "auth"
	case KindFolder:
		return "folder"
	case KindFetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// Error wraps a protocol failure with the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapErr(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// ErrKind returns the failure kind of err, or KindUnknown for errors that
// did not originate in a session.
func ErrKind(err error) Kind {
	var sessionErr *Error
	if errors.As(err, &sessionErr) {
		return sessionErr.Kind
	}
	return KindUnknown
}
