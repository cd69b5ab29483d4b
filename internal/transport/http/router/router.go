package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/account-service/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	ValidateFull(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Users(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Account AccountHandler

	AuthMW func(http.Handler) http.Handler

	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Account == nil {
		return nil, fmt.Errorf("nil Account handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.HeaderXRequestID},
		ExposedHeaders:   []string{middleware.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.Account.Register)
		r.Post("/login", deps.Account.Login)
		r.Post("/validate", deps.Account.Validate)
		r.Post("/validate/full", deps.Account.ValidateFull)
		r.Post("/update", deps.Account.Update)
		r.With(deps.AuthMW).Get("/users", deps.Account.Users)
	})

	return r, nil
}
