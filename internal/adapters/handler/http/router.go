package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

type AuthRouterDeps struct {
	AuthHandler *AuthHandler
	UserHandler *UserHandler
	Tokens      ports.TokenIssuer
	Metrics     *Metrics
	Logger      *slog.Logger
}

type AssessmentRouterDeps struct {
	AssessmentHandler *AssessmentHandler
	Verifier          ports.BearerVerifier
	Metrics           *Metrics
	Logger            *slog.Logger
}

func NewAuthRouter(deps AuthRouterDeps) http.Handler {
	r := newBaseRouter(deps.Metrics, deps.Logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.AuthHandler.Register)
		r.Post("/login", deps.AuthHandler.Login)
		r.Post("/refresh", deps.AuthHandler.Refresh)

		r.With(Authenticate(deps.Tokens)).Get("/me", deps.UserHandler.GetMe)
	})

	return r
}

func NewAssessmentRouter(deps AssessmentRouterDeps) http.Handler {
	r := newBaseRouter(deps.Metrics, deps.Logger)

	r.Route("/assessments", func(r chi.Router) {
		r.Use(RequireBearer(deps.Verifier))

		r.Get("/active", deps.AssessmentHandler.ListActive)
		r.Post("/start", deps.AssessmentHandler.Start)
		r.Post("/answer", deps.AssessmentHandler.Answer)
		r.Post("/complete", deps.AssessmentHandler.Complete)
	})

	return r
}

func newBaseRouter(metrics *Metrics, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(metrics.Middleware)
	r.Use(Recoverer(logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
