package auth

import (
	"time"

	"github.com/siege-works/garrison/internal/roles"
)

// User represents a regiment member account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         roles.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SafeUser is the API representation of a user, without the password hash.
type SafeUser struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Role      roles.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Safe strips credentials from a user record.
func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
