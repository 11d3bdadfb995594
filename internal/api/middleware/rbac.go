package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// RBAC lets the request through only when the role Auth stored on the
// context is one of roles. Mount it after Auth.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleKey).(string)
			if role == "" || !slices.Contains(roles, domain.Role(role)) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
