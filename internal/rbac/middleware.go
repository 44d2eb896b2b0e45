package rbac

import (
	"log/slog"
	"net/http"

	"github.com/siege-works/garrison/internal/platform/httpx"
	"github.com/siege-works/garrison/internal/roles"
	"github.com/siege-works/garrison/internal/shared"
)

// Middleware wires role-gate helpers for HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// RequireRole ensures the resolved principal ranks at or above minimum.
// Requests without a principal get 401; an insufficient rank gets 403. The
// response never discloses the target's exact rank.
func (m Middleware) RequireRole(minimum roles.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := shared.PrincipalFromContext(r.Context())
			if p == nil {
				httpx.RespondError(w, shared.ErrAuthenticationRequired)
				return
			}
			if !roles.AtLeast(p.Role, minimum) {
				if m.Logger != nil {
					m.Logger.Info("role gate rejected",
						slog.Int64("user_id", p.UserID),
						slog.String("role", string(p.Role)),
						slog.String("required", string(minimum)),
						slog.String("path", r.URL.Path))
				}
				httpx.RespondError(w, shared.ErrInsufficientPermission)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
