package apierror

import (
	"encoding/json"
	"net/http"
)

// Error represents a structured API error. The wire body is a JSON object
// with a single "error" string field, the shape existing clients already
// parse; StatusCode and Code stay server-side for mapping and logs.
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"-"`
	Message    string `json:"error"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// ToJSON converts the error to its wire body.
func (e *Error) ToJSON() []byte {
	data, _ := json.Marshal(e)
	return data
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
	}
}

// NotFound creates a 404 Not Found error.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    message,
	}
}

// Timeout creates a 504 Gateway Timeout error for store calls that exceeded
// their deadline.
func Timeout(message string) *Error {
	if message == "" {
		message = "store operation timed out"
	}
	return &Error{
		StatusCode: http.StatusGatewayTimeout,
		Code:       "TIMEOUT",
		Message:    message,
	}
}

// InternalError creates a 500 Internal Server Error.
func InternalError(message string) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
	}
}
