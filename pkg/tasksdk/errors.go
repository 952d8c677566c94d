package tasksdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasks/pkg/httpx"
)

// Error codes carried in the "error" field of every error response.
const (
	ErrorCodeValidation         = "validation_failed"
	ErrorCodeUserExists         = "user_already_exists"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeNotAuthorized      = "not_authorized"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeServerError        = "server_error"
)

// APIError is an error response from the API. The server writes it with
// WriteError and the client decodes it back, so both ends share one shape.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is a machine readable error code (e.g., "not_found")
	Code string `json:"error"`

	// Message is a human-readable description of the error
	Message string `json:"message"`

	// Details maps field names to problems for validation errors
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// WriteError writes e as the HTTP response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// IsNotAuthorized reports whether err is a 401 from the API.
func IsNotAuthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies that
// are not ours (a proxy error page, say) keep their text as the message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	// Success responses
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    strings.TrimSpace(string(body)),
	}
}
