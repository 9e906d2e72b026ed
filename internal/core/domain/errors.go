package domain

import "errors"

// Sentinel errors raised by services and repositories. They are translated to
// HTTP status codes at a single point per service (api.NewHTTPErrorHandler).
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")

	ErrLabNotFound          = errors.New("laboratory not found")
	ErrAnalysisTypeNotFound = errors.New("analysis type not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrResultNotFound       = errors.New("result not found")

	ErrResultExists     = errors.New("a result already exists for this appointment")
	ErrAssignmentExists = errors.New("analysis type already assigned to this laboratory")

	ErrBadRequest    = errors.New("bad request")
	ErrInvalidStatus = errors.New("invalid status value")
	ErrPastSchedule  = errors.New("appointment date must be in the future")

	ErrRecoveryTokenInvalid = errors.New("recovery token invalid or expired")
)
