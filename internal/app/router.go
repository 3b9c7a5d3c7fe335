package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/comments"
	"github.com/inkwell-blog/inkwell/internal/posts"
	"github.com/inkwell-blog/inkwell/internal/shared"
	"github.com/inkwell-blog/inkwell/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	Guard           auth.Middleware
	AuthHandler     *auth.Handler
	UsersHandler    *users.Handler
	PostsHandler    *posts.Handler
	CommentsHandler *comments.Handler
}

// NewRouter constructs the chi.Router with Inkwell defaults. Role
// requirements are declared here, at route-table construction, not inside
// business code.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes(params.Guard))
	r.Route("/posts", params.PostsHandler.MountRoutes)
	r.Route("/comments", params.CommentsHandler.MountRoutes)
	r.Route("/users", func(r chi.Router) {
		r.Use(params.Guard.RequireRoles(shared.RoleAdmin))
		params.UsersHandler.MountRoutes(r)
	})

	return r
}
