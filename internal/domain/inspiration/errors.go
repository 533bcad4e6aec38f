package inspiration

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of generation failure categories.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTimeout
	KindAuthFailure
	KindRateLimited
	KindInvalidResponse
	KindNotConfigured
	KindInvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindAuthFailure:
		return "auth_failure"
	case KindRateLimited:
		return "rate_limited"
	case KindInvalidResponse:
		return "invalid_response"
	case KindNotConfigured:
		return "not_configured"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// GenerationError is raised at the transport boundary. Status and Body are
// set when the upstream answered with an error status.
type GenerationError struct {
	Kind    ErrorKind
	Status  int
	Body    string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewError builds a GenerationError of the given kind.
func NewError(kind ErrorKind, message string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first GenerationError in err's chain.
func KindOf(err error) ErrorKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return KindUnknown
}
