package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdministrator gates a route on the administrator allowlist.
// It must be chained after SessionAuth; it only checks, it never
// enriches the context. The allowlist is immutable for the process
// lifetime.
func RequireAdministrator(allowlist []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, email := range allowlist {
		allowed[email] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFrom(c)
			if !ok {
				return errJSON(c, http.StatusUnauthorized, "Authentication required.")
			}

			if _, ok := allowed[session.Email]; !ok {
				return errJSON(c, http.StatusForbidden, "Administrator access required.")
			}

			return next(c)
		}
	}
}
