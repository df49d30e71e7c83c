package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/rzdmap/rzdmap-api/internal/api/handler"
	"github.com/rzdmap/rzdmap-api/internal/core/domain"
)

// RBAC lets the request through when the token carries any of allowedRoles.
// Role names compare case-insensitively. Otherwise it returns
// domain.ErrForbidden for the central error handler to render.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[domain.NormalizeName(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(handler.CtxRoles).([]string)
			for _, r := range roles {
				if _, ok := allowed[domain.NormalizeName(r)]; ok {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}
