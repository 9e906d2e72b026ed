package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// FieldErrors is a field-to-message validation error, rendered as a
// VALIDATION_ERROR envelope at the HTTP boundary.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders field validation failures as VALIDATION_ERROR with the map as data.
//   - Logs unexpected errors internally without leaking details to the client.
//
// This is the single error translation point per service; services raise
// sentinel errors and never shape HTTP responses themselves.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var fe FieldErrors
		if errors.As(err, &fe) {
			_ = ValidationError(c, fe)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = Error(c, code, msg)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrLabNotFound),
		errors.Is(err, domain.ErrAnalysisTypeNotFound),
		errors.Is(err, domain.ErrAppointmentNotFound),
		errors.Is(err, domain.ErrResultNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrInactiveAccount):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrResultExists),
		errors.Is(err, domain.ErrAssignmentExists),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrPastSchedule),
		errors.Is(err, domain.ErrRecoveryTokenInvalid),
		errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
