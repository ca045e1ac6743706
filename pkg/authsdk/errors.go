package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dabotcentral/central/pkg/httpx"
)

// Error codes carried in the "error" field of failed responses.
const (
	ErrorCodeValidation        = "validation_error"
	ErrorCodeMissingCredential = "missing_credential"
	ErrorCodeInvalidCredential = "invalid_credential"
	ErrorCodeExpiredCredential = "expired_credential"
	ErrorCodeForbidden         = "forbidden"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeDeliveryFailed    = "delivery_failed"
	ErrorCodeServerError       = "server_error"
)

// APIError is a failed API response. It is written by the server and
// returned by the SDK client.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	Success bool   `json:"success"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches errors with the same status and code regardless of message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode && t.Code == e.Code
}

// WithMessage returns a copy of e carrying msg.
func (e *APIError) WithMessage(msg string) *APIError {
	cp := *e
	cp.Message = msg
	return &cp
}

// WriteError writes e as the JSON response. 401 responses also carry a
// WWW-Authenticate challenge.
func (e *APIError) WriteError(w http.ResponseWriter) {
	if e.StatusCode == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Bearer error=%q`, e.Code))
	}
	httpx.WriteJSON(w, e.StatusCode, APIError{
		Success: false,
		Code:    e.Code,
		Message: e.Message,
	})
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeValidation,
		Message:    "the request is malformed or missing required fields",
	}

	ErrMissingCredential = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeMissingCredential,
		Message:    "No token provided",
	}

	ErrInvalidCredential = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredential,
		Message:    "Invalid or expired token",
	}

	ErrExpiredCredential = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeExpiredCredential,
		Message:    "Invalid or expired token",
	}

	// ErrInvalidCode is returned by verify-otp for unknown, used or expired
	// codes.
	ErrInvalidCode = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredential,
		Message:    "Invalid or expired OTP",
	}

	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "Admin access required",
	}

	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "not found",
	}

	ErrTodoNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "No daily todo found. Please create one first.",
	}

	ErrDeliveryFailed = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeDeliveryFailed,
		Message:    "Failed to send OTP email",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
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
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
