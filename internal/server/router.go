package server

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/tickdeck/go-tickdeck/pkg/http"
	"github.com/urfave/negroni"
)

func NewRouter(cfg http.RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(time.Duration(cfg.TimeoutSec) * time.Second))
	r.Use(httprate.LimitAll(cfg.RequestPerSecLimit, time.Second))
	if !cfg.DisableCors {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   cfg.AllowedMethods,
			AllowedHeaders:   cfg.AllowedHeaders,
			AllowCredentials: true,
		}))
	}
	return r
}

func AddRoutes(r *chi.Mux, handler *Handler) *chi.Mux {
	r.Get("/session", negroni.New(negroni.WrapFunc(handler.OpenSession)).ServeHTTP)
	r.Get("/stats", negroni.New(negroni.WrapFunc(handler.GetStats)).ServeHTTP)
	r.Get("/health", negroni.New(negroni.WrapFunc(handler.Health)).ServeHTTP)
	return r
}
