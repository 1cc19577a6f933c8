package middlewares

import (
	"context"
	"net/http"
	"strings"

	"campus-connect/app/server/jwt"
	"campus-connect/app/server/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Session is the verified-identity context attached to a request after
// the bearer token has been verified and resolved to a local user.
type Session struct {
	UserID uint
	Email  string
	Name   string
}

const sessionContextKey = "session"

// UserFinder resolves a verified email claim to a local user record.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionFrom returns the verified-identity context populated by
// SessionAuth, if any.
func SessionFrom(c echo.Context) (*Session, bool) {
	s, ok := c.Get(sessionContextKey).(*Session)
	return s, ok
}

// SessionAuth authenticates requests from the Authorization header.
// Missing or malformed credentials are rejected before any datastore is
// touched; a verified token whose email has no local user record is
// rejected cleanly instead of leaving an unusable context behind.
func SessionAuth(users UserFinder, j *jwt.JWT, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return errJSON(c, http.StatusUnauthorized, "Authentication required. Please send JWT in the Authorization header.")
			}

			claims, err := j.ParseSession(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				return errJSON(c, http.StatusForbidden, "Invalid token session. Please log in again.")
			}

			user, err := users.FindUserByEmail(c.Request().Context(), claims.Email)
			if err != nil {
				// Token signature is fine but the account was never
				// provisioned (or the store failed); do not let
				// handlers dereference a half-built session.
				l.Warn("session resolved to no user", zap.String("email", claims.Email), zap.Error(err))
				return errJSON(c, http.StatusUnauthorized, "Authentication required. Please log in again.")
			}

			c.Set(sessionContextKey, &Session{
				UserID: user.ID,
				Email:  user.Email,
				Name:   user.Name,
			})

			return next(c)
		}
	}
}

func errJSON(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, echo.Map{
		"success": false,
		"message": message,
	})
}
