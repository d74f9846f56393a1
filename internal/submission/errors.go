package submission

import (
	"errors"
	"fmt"
)

// GenericFailureMessage is shown when the service gives no usable detail.
const GenericFailureMessage = "Unable to generate recommendation."

// ServiceError is a non-2xx response from the recommendation service.
// Detail is empty when the body had no readable "detail" string.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("recommendation service: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("recommendation service: status %d", e.StatusCode)
}

// TransportError means no response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport failure"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means a 2xx response body was not a valid recommendation.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode recommendation: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FailureMessage maps a submission error to the text shown to the operator.
// Service details are surfaced verbatim, transport failures show their cause,
// and everything else collapses to GenericFailureMessage.
func FailureMessage(err error) string {
	if err == nil {
		return GenericFailureMessage
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		if svcErr.Detail != "" {
			return svcErr.Detail
		}
		return GenericFailureMessage
	}

	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return GenericFailureMessage
	}

	var trErr *TransportError
	if errors.As(err, &trErr) {
		if msg := trErr.Error(); msg != "" {
			return msg
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericFailureMessage
}
