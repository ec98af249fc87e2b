package gemini

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

type ErrorKind string

const (
	KindInvalidRequest ErrorKind = "invalid_request"
	KindUnauthorized   ErrorKind = "unauthorized"
	KindForbidden      ErrorKind = "forbidden"
	KindNotFound       ErrorKind = "not_found"
	KindRateLimited    ErrorKind = "rate_limited"
	KindOverloaded     ErrorKind = "overloaded"
	KindUnknown        ErrorKind = "unknown"
)

// ProviderError is a model call failure normalized to an ErrorKind so the
// caller never has to inspect provider internals.
type ProviderError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("model provider: %s (%d): %s", e.Kind, e.Status, e.Message)
}

// Retryable reports whether retrying the same request can help. Only a
// temporarily overloaded provider qualifies.
func (e *ProviderError) Retryable() bool {
	return e.Kind == KindOverloaded
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindInvalidRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusServiceUnavailable:
		return KindOverloaded
	default:
		return KindUnknown
	}
}

// classify maps go-openai errors onto ProviderError.
func classify(err error) *ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{
			Kind:    kindForStatus(apiErr.HTTPStatusCode),
			Status:  apiErr.HTTPStatusCode,
			Message: apiErr.Message,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ProviderError{
			Kind:    kindForStatus(reqErr.HTTPStatusCode),
			Status:  reqErr.HTTPStatusCode,
			Message: reqErr.Error(),
		}
	}
	return &ProviderError{
		Kind:    KindUnknown,
		Message: err.Error(),
	}
}
