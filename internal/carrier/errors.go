package carrier

import (
	"encoding/json"
	"fmt"
)

// AuthError means an OAuth token could not be obtained for a scope.
type AuthError struct {
	Scope Scope
	Err   error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("carrier auth failed for %s scope: %v", e.Scope, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RequestError is a carrier HTTP 4xx/5xx. When the carrier returned a
// structured error payload, Code and Message carry its first entry; Body
// always holds the raw response for diagnostics.
type RequestError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *RequestError) Error() string {
	// prefer the carrier's own error over the raw body
	if e.Code != "" || e.Message != "" {
		return fmt.Sprintf("carrier request failed (%d): %s %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("carrier request failed (%d): %s", e.StatusCode, e.Body)
}

// ResponseError is a 200 response whose body is missing the structure we
// need. It is distinct from "no data": callers must be able to tell an
// empty result from an unparsable one.
type ResponseError struct {
	Reason string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected carrier response: %s", e.Reason)
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiErrorEnvelope struct {
	TransactionID string     `json:"transactionId"`
	Errors        []apiError `json:"errors"`
}

// newRequestError classifies a non-2xx carrier response, pulling out the
// first structured error if the payload has one.
func newRequestError(statusCode int, body []byte) *RequestError {
	reqErr := &RequestError{StatusCode: statusCode, Body: string(body)}

	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		reqErr.Code = envelope.Errors[0].Code
		reqErr.Message = envelope.Errors[0].Message
	}
	return reqErr
}
