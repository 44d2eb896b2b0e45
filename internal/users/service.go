package users

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/siege-works/garrison/internal/rbac"
	"github.com/siege-works/garrison/internal/roles"
	"github.com/siege-works/garrison/internal/shared"
)

const bcryptCost = 12

// Service applies the hierarchy-containment policy around user persistence.
// Checks run in a fixed order and stop at the first failure; no partial
// mutation ever happens on a policy reject.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create makes a new account. The requested role string is validated at the
// boundary; an empty role defaults to Member.
func (s *Service) Create(ctx context.Context, actor *shared.Principal, username, password, roleName string) (*User, error) {
	if roleName == "" {
		roleName = string(roles.Member)
	}
	role, err := roles.Parse(roleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidRole, roleName)
	}
	if err := rbac.AuthorizeCreateUser(actor.Role, role); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, username, string(hash), role)
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// ChangeRole moves the target to a new role, subject to the containment
// rules. Unknown role strings are rejected before the target is touched.
func (s *Service) ChangeRole(ctx context.Context, actor *shared.Principal, targetID int64, roleName string) (*User, error) {
	role, err := roles.Parse(roleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidRole, roleName)
	}
	target, err := s.repo.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := rbac.AuthorizeRoleChange(actor.Role, target.Role, role); err != nil {
		return nil, err
	}
	return s.repo.UpdateRole(ctx, targetID, role)
}

// Delete removes the target account, subject to containment and
// self-protection.
func (s *Service) Delete(ctx context.Context, actor *shared.Principal, targetID int64) error {
	target, err := s.repo.Get(ctx, targetID)
	if err != nil {
		return err
	}
	if err := rbac.AuthorizeUserDelete(actor, target.ID, target.Role); err != nil {
		return err
	}
	return s.repo.Delete(ctx, targetID)
}
