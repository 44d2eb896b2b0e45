// Package rbac gates privileged mutations on the role ladder.
package rbac

import (
	"fmt"

	"github.com/siege-works/garrison/internal/roles"
	"github.com/siege-works/garrison/internal/shared"
)

// The user-management rules below are evaluated in a fixed order and stop at
// the first failure: terminal-role-assignment reject, then hierarchy
// containment (skipped for a Maintainer requester), then self-protection.
// The minimum-role gate runs earlier, as middleware.

// AuthorizeCreateUser decides whether the actor may create a user with the
// given role. The role must already be parsed; unknown strings are rejected
// at the handler boundary.
func AuthorizeCreateUser(actor roles.Role, newRole roles.Role) error {
	if newRole == roles.Maintainer {
		return fmt.Errorf("%w: Maintainer accounts can only be created via the seed tool", shared.ErrInsufficientPermission)
	}
	if actor != roles.Maintainer {
		if roles.Rank(newRole) >= roles.Rank(actor) {
			return fmt.Errorf("%w: cannot create a user with a role equal to or higher than your own", shared.ErrInsufficientPermission)
		}
	}
	return nil
}

// AuthorizeRoleChange decides whether the actor may move the target from its
// current role to newRole.
func AuthorizeRoleChange(actor roles.Role, targetCurrent roles.Role, newRole roles.Role) error {
	if newRole == roles.Maintainer {
		return fmt.Errorf("%w: cannot assign the Maintainer role", shared.ErrInsufficientPermission)
	}
	if !roles.Valid(targetCurrent) {
		return fmt.Errorf("%w: target has role %q", shared.ErrInvalidRole, targetCurrent)
	}
	if actor != roles.Maintainer {
		if roles.Rank(targetCurrent) >= roles.Rank(actor) {
			return fmt.Errorf("%w: cannot modify a user with equal or higher role", shared.ErrInsufficientPermission)
		}
		if roles.Rank(newRole) >= roles.Rank(actor) {
			return fmt.Errorf("%w: cannot assign a role equal to or higher than your own", shared.ErrInsufficientPermission)
		}
	}
	return nil
}

// AuthorizeUserDelete decides whether the actor may delete the target user.
func AuthorizeUserDelete(actor *shared.Principal, targetID int64, targetCurrent roles.Role) error {
	if !roles.Valid(targetCurrent) {
		return fmt.Errorf("%w: target has role %q", shared.ErrInvalidRole, targetCurrent)
	}
	if actor.Role != roles.Maintainer {
		if roles.Rank(targetCurrent) >= roles.Rank(actor.Role) {
			return fmt.Errorf("%w: cannot remove a user with equal or higher role", shared.ErrInsufficientPermission)
		}
	}
	if actor.UserID == targetID {
		return fmt.Errorf("%w: cannot delete yourself", shared.ErrInsufficientPermission)
	}
	return nil
}
