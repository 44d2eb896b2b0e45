package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/siege-works/garrison/internal/auth"
	"github.com/siege-works/garrison/internal/bases"
	"github.com/siege-works/garrison/internal/missions"
	"github.com/siege-works/garrison/internal/observability"
	"github.com/siege-works/garrison/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	Gateway         *auth.Gateway
	AuthHandler     *auth.Handler
	UsersHandler    *users.Handler
	BasesHandler    *bases.Handler
	MissionsHandler *missions.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with garrison defaults. Every route
// under /api except the auth endpoints passes through the authentication
// gateway first; role gates are mounted inside the handlers.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Group(func(r chi.Router) {
			r.Use(params.Gateway.Authenticate)
			r.Route("/users", params.UsersHandler.MountRoutes)
			r.Route("/bases", params.BasesHandler.MountRoutes)
			r.Route("/missions", params.MissionsHandler.MountRoutes)
		})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
