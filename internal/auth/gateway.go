package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/siege-works/garrison/internal/platform/httpx"
	"github.com/siege-works/garrison/internal/shared"
)

// TokenCookieName is the fallback cookie slot for the bearer credential.
const TokenCookieName = "token"

// Outcome tags which mechanism resolved the principal.
type Outcome int

const (
	// Unauthenticated means neither mechanism yielded a user.
	Unauthenticated Outcome = iota
	// SessionHit means a live session resolved the user.
	SessionHit
	// CredentialHit means the bearer token resolved the user.
	CredentialHit
)

func (o Outcome) String() string {
	switch o {
	case SessionHit:
		return "session"
	case CredentialHit:
		return "credential"
	default:
		return "unauthenticated"
	}
}

// Gateway resolves each inbound request to exactly one principal, trying a
// server-side session first and a bearer token second.
type Gateway struct {
	logger   *slog.Logger
	users    Repository
	sessions *shared.SessionManager
	secret   []byte
}

// NewGateway constructs a Gateway.
func NewGateway(logger *slog.Logger, users Repository, sessions *shared.SessionManager, tokenSecret []byte) *Gateway {
	return &Gateway{logger: logger, users: users, sessions: sessions, secret: tokenSecret}
}

// Resolve applies the fixed precedence: session, then bearer token. A live
// session whose backing user has been deleted is treated as session-absent
// and falls through to the token path rather than failing outright.
func (g *Gateway) Resolve(ctx context.Context, r *http.Request) (*shared.Principal, Outcome, error) {
	if sessionID, ok := g.sessions.ReadCookie(r); ok {
		userID, err := g.sessions.Lookup(ctx, sessionID)
		switch {
		case err == nil:
			user, err := g.users.FindByID(ctx, userID)
			if err == nil {
				return principal(user), SessionHit, nil
			}
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, Unauthenticated, err
			}
			// User deleted out from under the session: fall through.
		case !errors.Is(err, shared.ErrNotFound):
			return nil, Unauthenticated, err
		}
	}

	token := bearerToken(r)
	if token == "" {
		return nil, Unauthenticated, shared.ErrAuthenticationRequired
	}
	userID, err := UserIDFromToken(token, g.secret)
	if err != nil {
		return nil, Unauthenticated, shared.ErrInvalidToken
	}
	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, Unauthenticated, shared.ErrUserNotFound
		}
		return nil, Unauthenticated, err
	}
	return principal(user), CredentialHit, nil
}

// Authenticate is the middleware form of Resolve. Every failure kind
// collapses to 401 at the boundary; the distinction is logged only.
func (g *Gateway) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, outcome, err := g.Resolve(r.Context(), r)
		if err != nil {
			if g.logger != nil {
				g.logger.Info("authentication rejected",
					slog.String("reason", err.Error()),
					slog.String("path", r.URL.Path))
			}
			httpx.RespondError(w, err)
			return
		}
		if g.logger != nil {
			g.logger.Debug("authenticated",
				slog.Int64("user_id", p.UserID),
				slog.String("via", outcome.String()))
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), p)))
	})
}

func principal(u *User) *shared.Principal {
	return &shared.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
