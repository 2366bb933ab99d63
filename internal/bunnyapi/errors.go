package bunnyapi

import (
	"errors"
	"fmt"
)

// Kind classifies a Bunny API failure.
type Kind int

const (
	// KindClient covers every failure that is neither Unauthorized nor NotFound:
	// unexpected status codes, transport errors and payload validation.
	KindClient Kind = iota
	KindUnauthorized
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "Unauthorized"
	case KindNotFound:
		return "Not Found"
	default:
		return "Client Error"
	}
}

var (
	// ErrClient matches every *Error, including Unauthorized and NotFound.
	ErrClient       = errors.New("bunny: client error")
	ErrUnauthorized = errors.New("bunny: unauthorized")
	ErrNotFound     = errors.New("bunny: not found")
	// ErrInvalidRecord is returned when a record payload is rejected before
	// any request is sent.
	ErrInvalidRecord = errors.New("bunny: invalid record")
)

// Error is returned by every Client operation that fails.
type Error struct {
	Kind       Kind
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil && !errors.Is(e.Err, ErrInvalidRecord) {
		return fmt.Sprintf("bunny: %s: %v", msg, e.Err)
	}
	return "bunny: " + msg
}

func (e *Error) Unwrap() []error {
	errs := []error{ErrClient}
	switch e.Kind {
	case KindUnauthorized:
		errs = append(errs, ErrUnauthorized)
	case KindNotFound:
		errs = append(errs, ErrNotFound)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func invalidRecord(format string, args ...any) *Error {
	return &Error{Kind: KindClient, Message: fmt.Sprintf(format, args...), Err: ErrInvalidRecord}
}

// IsUnauthorized reports whether err is an Unauthorized API error.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsNotFound reports whether err is a NotFound API error, including a zone
// name that could not be resolved locally.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
