package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

// SessionContextKey is the echo.Context key holding the authorized *domain.Session.
const SessionContextKey = "session"

// SessionAuthorizer resolves a session ID to a live admin session.
type SessionAuthorizer interface {
	Authorize(ctx context.Context, sessionID string) (*domain.Session, error)
}

// SessionCookies reads and re-issues the session cookie.
type SessionCookies interface {
	Read(c echo.Context) (string, error)
	Issue(c echo.Context, sessionID string) error
}

// RequireAdmin rejects requests without a live admin session with 401. On
// success the cookie is re-issued so its expiry follows the sliding window.
func RequireAdmin(auth SessionAuthorizer, cookies SessionCookies) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, err := cookies.Read(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			session, err := auth.Authorize(c.Request().Context(), sessionID)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
			}

			if err := cookies.Issue(c, session.ID); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
			}

			c.Set(SessionContextKey, session)
			return next(c)
		}
	}
}
