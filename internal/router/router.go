package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-auth-service/internal/config"
	"go-auth-service/internal/handler"
	"go-auth-service/internal/middleware"
	"go-auth-service/pkg/apierror"
)

type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
	Docs *handler.DocsHandler
}

func New(
	cfg *config.Config,
	authenticator *middleware.Authenticator,
	gate *middleware.Gate,
	handlers Handlers,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(authenticator.Attach)
	r.Use(gate.Require)

	r.Get("/actuator/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"UP"}`))
	})
	r.Get("/openapi.yaml", handlers.Docs.OpenAPI)
	r.Get("/swagger", handlers.Docs.SwaggerUI)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", handlers.Auth.Register)
			auth.Post("/login", handlers.Auth.Login)
			auth.Get("/health", handlers.Auth.Health)
		})

		api.Route("/users", func(users chi.Router) {
			users.Get("/", handlers.User.List)
			users.Get("/me", handlers.User.Me)
			users.Get("/{id}", handlers.User.Get)
			users.Put("/{id}", handlers.User.Update)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteError(w, req, apierror.NotFoundMessage("Resource not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteError(w, req, apierror.New(http.StatusMethodNotAllowed,
			apierror.CodeBusiness, apierror.InternalBusiness, "Method not allowed"))
	})

	return r
}
