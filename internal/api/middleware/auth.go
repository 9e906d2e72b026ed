package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/labworks/clinical-labs-api/internal/auth"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

// Context keys populated by Authenticate.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// Authenticate is the request authentication gate. It is best-effort and
// never rejects: a missing, malformed or invalid bearer token leaves the
// request unauthenticated and downstream authorization decides. On a valid
// token the identity is looked up by subject and attached to the context.
func Authenticate(codec *auth.Codec, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Debug().Str("path", c.Path()).Msg("ignoring non-bearer authorization header")
				return next(c)
			}
			token := parts[1]

			subject, err := codec.Subject(token)
			if err != nil {
				log.Warn().Str("path", c.Path()).Msg("malformed bearer token")
				return next(c)
			}

			user, err := users.FindByEmail(c.Request().Context(), subject)
			if err != nil {
				log.Warn().Str("subject", subject).Msg("token subject unknown")
				return next(c)
			}

			if !codec.IsValid(token, user.Email) {
				log.Warn().Str("subject", subject).Msg("invalid or expired token")
				return next(c)
			}

			c.Set(ContextUserID, user.ID)
			c.Set(ContextEmail, user.Email)
			c.Set(ContextRole, user.Role)

			return next(c)
		}
	}
}

// RequireAuth rejects requests that carry no authenticated identity.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, _ := c.Get(ContextUserID).(string); id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
