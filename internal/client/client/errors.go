package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure crossing the client boundary, whichever
// backend produced it.
type ErrorKind int

const (
	// KindTransport: no response was received.
	KindTransport ErrorKind = iota + 1
	// KindBusiness: the server answered with a failure.
	KindBusiness
	// KindNotFound: the requested record does not exist.
	KindNotFound
	// KindUnauthorized: the server rejected the credentials or token.
	KindUnauthorized
	// KindDecode: the response could not be understood.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindBusiness:
		return "business"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// NetworkErrorMessage is the user-facing text of every transport failure.
const NetworkErrorMessage = "Network error. Please check your connection and try again."

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error is the single failure shape returned by AuthClient and DataClient
// implementations. Message is safe to show to the user.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers match on the sentinels without unpacking the kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindTransport
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// MessageOf returns the user-facing message of err, falling back to
// err.Error() for foreign errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: NetworkErrorMessage, Err: err}
}

func decodeError(err error) *Error {
	return &Error{Kind: KindDecode, Message: "Unexpected response from server.", Err: err}
}

func notFoundError(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func statusMessage(status int) string {
	return fmt.Sprintf("Request failed with status code %d", status)
}
