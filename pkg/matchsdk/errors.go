package matchsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/mutual/pkg/httpx"
)

// Error codes carried in the "error" field of every error body.
const (
	ErrorCodeInvalidInput       = "invalid_input"
	ErrorCodeUsernameTaken      = "username_taken"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeMethodNotAllowed   = "method_not_allowed"
	ErrorCodeInternal           = "internal_error"
)

// APIError is an error response from the service. The server writes it with
// WriteError and the SDK returns it from every failed call.
type APIError struct {
	// StatusCode is the HTTP status the error is sent with.
	StatusCode int `json:"-"`

	// Code is a stable machine readable code, e.g. "username_taken".
	Code string `json:"error"`

	// Message is human readable and may change between releases.
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *APIError with the same code, so that
// errors.Is(err, ErrUsernameTaken) works on errors built from a response.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes e as a JSON error response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Message)
}

// WithMessage returns a copy of e carrying a different message.
func (e *APIError) WithMessage(msg string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Message: msg}
}

var (
	// ErrInvalidInput is returned when a required field is missing or blank,
	// or the body is not valid JSON.
	ErrInvalidInput = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidInput,
		Message:    "the request is malformed or missing required fields",
	}

	// ErrUsernameTaken is returned by register when the username exists.
	ErrUsernameTaken = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeUsernameTaken,
		Message:    "username already taken",
	}

	// ErrInvalidCredentials is returned by login for an unknown username and
	// for a wrong password alike.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "invalid username or password",
	}

	// ErrUnauthorized is returned when the bearer token is missing, invalid
	// or expired.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "missing, invalid or expired token",
	}

	// ErrForbidden is returned when a token is used to read another user's
	// crushes or matches.
	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "token does not belong to this user",
	}

	// ErrNotFound is returned when the referenced user or route does not
	// exist.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "user not found",
	}

	// ErrMethodNotAllowed is returned when a known path is called with the
	// wrong method. The Allow header lists the accepted ones.
	ErrMethodNotAllowed = &APIError{
		StatusCode: http.StatusMethodNotAllowed,
		Code:       ErrorCodeMethodNotAllowed,
		Message:    "method not allowed",
	}

	// ErrInternal is returned for any unexpected failure. The detail is only
	// logged server side.
	ErrInternal = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeInternal,
		Message:    "internal server error",
	}
)

// NewAPIError creates an APIError with the given status, code and message.
func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies that
// are not in the service's error shape fall back to a generic error built
// from the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp httpx.ErrorBody
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return NewAPIError(resp.StatusCode, errResp.Error, errResp.Message)
	}

	code := ErrorCodeInternal
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		code = ErrorCodeUnauthorized
	case http.StatusForbidden:
		code = ErrorCodeForbidden
	case http.StatusNotFound:
		code = ErrorCodeNotFound
	case http.StatusMethodNotAllowed:
		code = ErrorCodeMethodNotAllowed
	case http.StatusBadRequest:
		code = ErrorCodeInvalidInput
	}
	return NewAPIError(resp.StatusCode, code,
		fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
}
