package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys populated by the Auth middleware.
const (
	CtxUsername = "username"
	CtxRoles    = "roles"
)

// ctxUsername returns the authenticated username. An empty value means the
// Auth middleware did not run for this route, which is reported as 401.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get(CtxUsername).(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
