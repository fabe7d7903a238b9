package ports

import (
	"context"

	"github.com/taskboard/task-system/internal/core/domain"
)

// TokenClaims is the identity embedded in a session token.
type TokenClaims struct {
	UserID string
	Role   string
	Name   string
	Avatar string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token  string
	Claims TokenClaims
}

// AuthService covers account creation, session handling and the employee
// directory.
type AuthService interface {
	// Signup creates an account. Role is employee unless the email exactly
	// matches a configured admin address. No session is issued.
	Signup(ctx context.Context, username, name, email, password string) error
	// Login verifies credentials, marks the user Online and issues a signed
	// token with a fixed 8-hour validity window.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout marks the user Offline. Safe to call when already Offline.
	Logout(ctx context.Context, userID string) error
	// ListEmployees returns all employee-role users, credential field
	// excluded. Admin-only.
	ListEmployees(ctx context.Context, callerRole string) ([]*domain.User, error)
}
