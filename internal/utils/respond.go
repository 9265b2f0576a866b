package utils

import "github.com/labstack/echo/v4"

// Error codes surfaced in the failure envelope.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeMalformed    = "MALFORMED"
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorBody is the error block of a failure envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// Envelope is the uniform response shape: success carries message+data,
// failure carries an empty data object plus an error block.
type Envelope struct {
	Message string     `json:"message"`
	Data    any        `json:"data"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// OK writes a success envelope with the given status.
func OK(c echo.Context, status int, message string, data any) error {
	if data == nil {
		data = echo.Map{}
	}
	return c.JSON(status, Envelope{Message: message, Data: data})
}

// Fail writes a failure envelope.  detail may be empty; when set it is
// echoed to the caller inside the error block.
func Fail(c echo.Context, status int, message, code, detail string) error {
	return c.JSON(status, Envelope{
		Message: message,
		Data:    echo.Map{},
		Error:   &ErrorBody{Code: code, Message: detail},
	})
}
