package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-system/internal/api/metrics"
	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

// LoginLimiter throttles repeated login attempts per email+IP. A nil limiter
// disables throttling (tests, single-node dev setups without Redis).
type LoginLimiter interface {
	Allow(ctx context.Context, email, ip string) (bool, error)
}

type AuthHandler struct {
	authService ports.AuthService
	limiter     LoginLimiter
}

func NewAuthHandler(authService ports.AuthService, limiter LoginLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

// Signup creates a new account. Role is assigned server-side from the admin
// allow-list; no session is issued.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.Signup(c.Request().Context(), req.Username, req.Name, req.Email, req.Password); err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "Account created successfully!"})
}

// Login authenticates a user and returns a token plus its embedded claims.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if h.limiter != nil {
		// Fail open on limiter errors: a degraded Redis must not lock
		// everyone out.
		if allowed, err := h.limiter.Allow(c.Request().Context(), req.Email, c.RealIP()); err == nil && !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return domain.ErrTooManyAttempts
		}
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token: result.Token,
		User: tokenUser{
			ID:     result.Claims.UserID,
			Role:   result.Claims.Role,
			Name:   result.Claims.Name,
			Avatar: result.Claims.Avatar,
		},
	})
}

// Logout clears the caller's presence. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// ListEmployees returns the employee directory for admins, credential field
// excluded.
//
// @Summary      List employees
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/employees [get]
func (h *AuthHandler) ListEmployees(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	employees, err := h.authService.ListEmployees(c.Request().Context(), role)
	if err != nil {
		return err
	}
	if employees == nil {
		employees = []*domain.User{}
	}
	return c.JSON(http.StatusOK, employees)
}
