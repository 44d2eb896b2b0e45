package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/siege-works/garrison/internal/platform/httpx"
	"github.com/siege-works/garrison/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	gateway   *Gateway
	sessions  *shared.SessionManager
	validator *validator.Validate
	secure    bool
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gateway *Gateway, sessions *shared.SessionManager, secure bool) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		gateway:   gateway,
		sessions:  sessions,
		validator: validator.New(),
		secure:    secure,
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Group(func(r chi.Router) {
		r.Use(h.gateway.Authenticate)
		r.Get("/me", h.handleMe)
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  SafeUser `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "username and password are required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "username and password are required")
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("login rejected", slog.String("username", req.Username))
		httpx.RespondError(w, shared.ErrInvalidCredentials)
		return
	}

	h.sessions.WriteCookie(w, result.SessionID)
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(h.sessions.TTL()),
	})
	httpx.JSON(w, http.StatusOK, loginResponse{Token: result.Token, User: result.User.Safe()})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := h.sessions.ReadCookie(r); ok {
		if err := h.service.Logout(r.Context(), sessionID); err != nil {
			h.logger.Warn("remove session", slog.Any("error", err))
		}
	}
	h.sessions.ClearCookie(w)
	// The bearer token cannot be invalidated server-side; clearing the
	// fallback cookie is the best the backend can do.
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Logged out."})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	p := shared.PrincipalFromContext(r.Context())
	if p == nil {
		httpx.RespondError(w, shared.ErrAuthenticationRequired)
		return
	}
	user, err := h.service.repo.FindByID(r.Context(), p.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user.Safe())
}
