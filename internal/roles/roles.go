// Package roles defines the regiment permission ladder and its total order.
package roles

import "fmt"

// Role is a named rung on the permission ladder.
type Role string

// Ladder members, ascending by privilege. The API-visible strings are
// case-sensitive; "Super Admin" carries a space.
const (
	Member     Role = "Member"
	Trusted    Role = "Trusted"
	Admin      Role = "Admin"
	SuperAdmin Role = "Super Admin"
	Maintainer Role = "Maintainer"
)

// ladder fixes the total order. Index is the rank.
var ladder = []Role{Member, Trusted, Admin, SuperAdmin, Maintainer}

// All returns the ladder in ascending order.
func All() []Role {
	out := make([]Role, len(ladder))
	copy(out, ladder)
	return out
}

// Parse validates an API-supplied role string. Unknown strings are rejected
// here so that no sentinel rank escapes into policy code.
func Parse(s string) (Role, error) {
	for _, r := range ladder {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("roles: unknown role %q", s)
}

// Rank returns the role's index on the ladder, or -1 for an unknown role.
// Policy code treats -1 as "invalid, reject".
func Rank(r Role) int {
	for i, known := range ladder {
		if known == r {
			return i
		}
	}
	return -1
}

// AtLeast reports whether r ranks at or above minimum. An unknown role never
// satisfies any minimum.
func AtLeast(r, minimum Role) bool {
	rank := Rank(r)
	if rank < 0 {
		return false
	}
	return rank >= Rank(minimum)
}

// Valid reports whether r is a rung on the ladder.
func Valid(r Role) bool {
	return Rank(r) >= 0
}
