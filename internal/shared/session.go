package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionManager orchestrates cookie based sessions backed by Redis. Each
// session is a single Redis record replaced wholesale on every write, so
// concurrent requests for the same id never observe a partial update.
type SessionManager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
}

type sessionPayload struct {
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(client *redis.Client, cookieName string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Create persists a new session for the user and returns its opaque id. The
// write completes before Create returns, so a caller that responds afterwards
// never hands out an id that is not yet durable.
func (sm *SessionManager) Create(ctx context.Context, userID int64) (string, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(sessionPayload{UserID: userID, CreatedAt: time.Now().UTC()})
	if err != nil {
		return "", err
	}
	if err := sm.client.Set(ctx, sm.redisKey(id), payload, sm.ttl).Err(); err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	return id, nil
}

// Lookup resolves a session id to the stored user id. Expired and unknown
// ids return ErrNotFound.
func (sm *SessionManager) Lookup(ctx context.Context, id string) (int64, error) {
	data, err := sm.client.Get(ctx, sm.redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("session lookup: %w", err)
	}
	var stored sessionPayload
	if err := json.Unmarshal(data, &stored); err != nil {
		return 0, fmt.Errorf("session decode: %w", err)
	}
	return stored.UserID, nil
}

// Destroy removes the session record. Destroying an already absent session
// is not an error.
func (sm *SessionManager) Destroy(ctx context.Context, id string) error {
	if err := sm.client.Del(ctx, sm.redisKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

// ReadCookie extracts the session id from the request, if present.
func (sm *SessionManager) ReadCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sm.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// WriteCookie attaches the session cookie to the response.
func (sm *SessionManager) WriteCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(sm.ttl),
	})
}

// ClearCookie instructs the client to discard the session cookie.
func (sm *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// TTL exposes the configured session lifetime.
func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// CookieName returns the cookie identifier used for sessions.
func (sm *SessionManager) CookieName() string {
	return sm.cookieName
}

func (sm *SessionManager) redisKey(id string) string {
	return "session:" + id
}
