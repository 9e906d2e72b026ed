package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Envelope codes.
const (
	CodeSuccess         = "SUCCESS"
	CodeError           = "ERROR"
	CodeValidationError = "VALIDATION_ERROR"
)

// Response is the uniform envelope wrapping every JSON payload. TraceID is a
// fresh UUID per response.
type Response struct {
	TraceID string      `json:"traceId"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success writes a SUCCESS envelope with the given HTTP status.
func Success(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{
		TraceID: uuid.NewString(),
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error writes an ERROR envelope with the given HTTP status.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{
		TraceID: uuid.NewString(),
		Code:    CodeError,
		Message: message,
		Data:    nil,
	})
}

// ValidationError writes a VALIDATION_ERROR envelope carrying the
// field-to-message map as data.
func ValidationError(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, Response{
		TraceID: uuid.NewString(),
		Code:    CodeValidationError,
		Message: "validation failed for the submitted fields",
		Data:    fields,
	})
}
