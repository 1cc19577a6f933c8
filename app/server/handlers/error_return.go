package handlers

import "github.com/labstack/echo/v4"

func (a *App) er(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, echo.Map{
		"success": false,
		"message": message,
	})
}

// erLegacy keeps the older {error, message} shape still emitted by the
// sign-in endpoints.
func (a *App) erLegacy(c echo.Context, statusCode int, errTitle string, message string) error {
	return c.JSON(statusCode, echo.Map{
		"error":   errTitle,
		"message": message,
	})
}
