package nlp

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("nlp: text must be a non-empty string")

type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindInvalidInput       ErrorKind = "invalid_input"
	KindServiceError       ErrorKind = "service_error"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindUnknown            ErrorKind = "unknown"
)

// ServiceError means the classification service answered with a non-2xx status.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("nlp service rejected request: got %d", e.StatusCode)
}

func (e *ServiceError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// ServiceUnavailableError means no response was received at all.
type ServiceUnavailableError struct {
	Err error
}

func (e *ServiceUnavailableError) Error() string {
	if e.Err == nil {
		return "nlp service unavailable"
	}
	return fmt.Sprintf("nlp service unavailable: %v", e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Err
}

func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var svcErr *ServiceError
	var unavailable *ServiceUnavailableError

	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.As(err, &svcErr):
		return KindServiceError
	case errors.As(err, &unavailable):
		return KindServiceUnavailable
	default:
		return KindUnknown
	}
}
