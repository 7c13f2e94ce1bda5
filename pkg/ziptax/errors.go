package ziptax

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a lookup produced no response.
type ErrorKind int

const (
	// KindTransport covers DNS, connection and body read failures.
	KindTransport ErrorKind = iota + 1
	// KindUnexpectedStatus is any HTTP status other than 200.
	KindUnexpectedStatus
	// KindDecode means the body could not be read as the expected JSON shape.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport error"
	case KindUnexpectedStatus:
		return "unexpected status"
	case KindDecode:
		return "decode error"
	default:
		return fmt.Sprintf("error kind %d", int(k))
	}
}

// Sentinels usable with errors.Is against any *Error of the matching kind.
var (
	ErrTransport        = &Error{Kind: KindTransport}
	ErrUnexpectedStatus = &Error{Kind: KindUnexpectedStatus}
	ErrDecode           = &Error{Kind: KindDecode}
)

// Error is the only error type returned by the lookup path.
type Error struct {
	Kind       ErrorKind
	StatusCode int    // set for KindUnexpectedStatus
	Body       string // response snippet for KindUnexpectedStatus
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindUnexpectedStatus && e.Body != "":
		return fmt.Sprintf("unexpected status code: %d body: %s", e.StatusCode, e.Body)
	case e.Kind == KindUnexpectedStatus:
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the ErrorKind from err.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func transportError(err error) error {
	return &Error{Kind: KindTransport, Err: err}
}

func decodeError(format string, args ...any) error {
	return &Error{Kind: KindDecode, Err: fmt.Errorf(format, args...)}
}
