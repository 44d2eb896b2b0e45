package shared

import (
	"context"

	"github.com/siege-works/garrison/internal/roles"
)

// Principal is the authenticated identity attached to a request. It is
// resolved fresh on every request and never cached across requests.
type Principal struct {
	UserID   int64
	Username string
	Role     roles.Role
}

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context, nil when the
// request is unauthenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}
