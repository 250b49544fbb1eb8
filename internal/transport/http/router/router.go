package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	VerifyEmail(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Session(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type Middleware = func(http.Handler) http.Handler

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler

	RequestIDMW Middleware
	TimingMW    Middleware
	MetricsMW   Middleware
	SessionMW   Middleware
	RequireUser Middleware

	// Per-route rate limits; nil disables the limit.
	RLRegister Middleware
	RLLogin    Middleware
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.SessionMW == nil {
		return nil, fmt.Errorf("nil Session middleware")
	}
	if deps.RequireUser == nil {
		return nil, fmt.Errorf("nil RequireUser middleware")
	}

	r := chi.NewRouter()

	if deps.RequestIDMW != nil {
		r.Use(deps.RequestIDMW)
	}
	if deps.MetricsMW != nil {
		r.Use(deps.MetricsMW)
	}
	if deps.TimingMW != nil {
		r.Use(deps.TimingMW)
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/auth/v1", func(r chi.Router) {
		r.Use(deps.SessionMW)

		r.With(use(deps.RLRegister)...).Post("/register", deps.Auth.Register)
		r.Get("/verify-email/{token}", deps.Auth.VerifyEmail)
		r.With(use(deps.RLLogin)...).Post("/login", deps.Auth.Login)
		r.Get("/session", deps.Auth.Session)
		r.Post("/logout", deps.Auth.Logout)

		r.With(deps.RequireUser).Get("/me", deps.Auth.Me)
	})

	return r, nil
}

// use drops nil middlewares so routes can be declared uniformly.
func use(mws ...Middleware) []Middleware {
	out := make([]Middleware, 0, len(mws))
	for _, mw := range mws {
		if mw != nil {
			out = append(out, mw)
		}
	}
	return out
}
