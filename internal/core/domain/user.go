package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Presence values for a user. Login flips a user Online, logout flips them
// back Offline; concurrent writers are last-write-wins.
const (
	PresenceOnline  = "Online"
	PresenceOffline = "Offline"
)

// User models an account in the credential store. Email and username are
// globally unique; role is fixed at signup (or forced to admin by seeding).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
