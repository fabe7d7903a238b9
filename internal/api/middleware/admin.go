package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-system/internal/core/domain"
)

// AdminOnly rejects any caller whose token role is not admin. It runs after
// Auth, so an empty role means the request never carried valid claims.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Admin access required"})
			}
			return next(c)
		}
	}
}
