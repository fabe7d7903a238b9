package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/task-system/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp["message"]
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", domain.ErrValidation, http.StatusBadRequest, "All fields are required"},
		{"email conflict", domain.ErrEmailTaken, http.StatusConflict, "An account with this email already exists."},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials."},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Not authorized to perform this action."},
		{"task missing", domain.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts. Try again later."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := render(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if msg != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, msg)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	code, _ := render(t, errors.Join(errors.New("context"), domain.ErrTaskNotFound))
	if code != http.StatusNotFound {
		t.Fatalf("wrapped sentinel must still map, got %d", code)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if msg != "missing authorization header" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	code, msg := render(t, errors.New("mongo: replica set dropped"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "Internal server error" {
		t.Fatalf("store details must not leak, got %q", msg)
	}
}
