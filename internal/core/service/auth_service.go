package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

const tokenTTL = 8 * time.Hour

// AuthService implements signup, login/logout and the employee directory.
type AuthService struct {
	repo        ports.UserRepository
	jwtSecret   string
	adminEmails []string
	logger      zerolog.Logger
}

// NewAuthService builds an AuthService. adminEmails is the allow-list used to
// grant the admin role at signup; matching is exact and case-sensitive.
func NewAuthService(repo ports.UserRepository, jwtSecret string, adminEmails []string, logger zerolog.Logger) *AuthService {
	emails := make([]string, 0, len(adminEmails))
	for _, e := range adminEmails {
		if e != "" {
			emails = append(emails, e)
		}
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, adminEmails: emails, logger: logger}
}

func (s *AuthService) roleFor(email string) string {
	for _, admin := range s.adminEmails {
		if email == admin {
			return domain.RoleAdmin
		}
	}
	return domain.RoleEmployee
}

// Signup creates an account. No session is issued; the caller logs in
// separately.
func (s *AuthService) Signup(ctx context.Context, username, name, email, password string) error {
	if username == "" || name == "" || email == "" || password == "" {
		return domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         s.roleFor(email),
		Status:       domain.PresenceOffline,
		Avatar:       GenerateAvatar(username),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("account created")
	return nil
}

// Login verifies credentials, marks the user Online and issues a token.
// Lookup and password failures are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	claims := ports.TokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	token, err := s.generateToken(claims)
	if err != nil {
		return nil, err
	}

	// Presence flips only once a token is guaranteed to be issued.
	if err := s.repo.SetStatus(ctx, user.ID, domain.PresenceOnline); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return &ports.LoginResult{Token: token, Claims: claims}, nil
}

// Logout marks the user Offline. Calling it for an already-Offline user is a
// no-op from the caller's perspective.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrValidation
	}
	if err := s.repo.SetStatus(ctx, userID, domain.PresenceOffline); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// ListEmployees returns every employee-role user. The password hash never
// leaves the domain struct's json:"-" field.
func (s *AuthService) ListEmployees(ctx context.Context, callerRole string) ([]*domain.User, error) {
	if callerRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByRole(ctx, domain.RoleEmployee)
}

func (s *AuthService) generateToken(c ports.TokenClaims) (string, error) {
	claims := jwt.MapClaims{
		"id":     c.UserID,
		"role":   c.Role,
		"name":   c.Name,
		"avatar": c.Avatar,
		"exp":    time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// AdminSeed is one admin account to ensure at startup.
type AdminSeed struct {
	Email    string
	Password string
}

// SeedAdmins creates the configured admin accounts when absent. A seed with
// an empty email or password is skipped; an existing email is left untouched.
func (s *AuthService) SeedAdmins(ctx context.Context, seeds []AdminSeed) error {
	for _, seed := range seeds {
		if seed.Email == "" || seed.Password == "" {
			continue
		}

		if _, err := s.repo.FindByEmail(ctx, seed.Email); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		username := seedUsername(seed.Email)
		now := time.Now().UTC()
		user := &domain.User{
			Username:     username,
			Name:         username + " (Admin)",
			Email:        seed.Email,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			Status:       domain.PresenceOffline,
			Avatar:       GenerateAvatar(username),
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if _, err := s.repo.Create(ctx, user); err != nil {
			return err
		}
		s.logger.Info().Str("email", seed.Email).Msg("admin user seeded")
	}
	return nil
}

func seedUsername(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
