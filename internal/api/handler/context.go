package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the identity injected by the Auth middleware and
// fast-fails before any service call: both id and role must be present,
// proving the middleware ran and the token carried a usable identity.
func ctxClaims(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("id").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
