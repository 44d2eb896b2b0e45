package users

import (
	"time"

	"github.com/siege-works/garrison/internal/roles"
)

// User is the management view of an account. The password hash never leaves
// the repository layer.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Role      roles.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
