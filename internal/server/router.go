// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/photorelay/service/docs/swagger"
	"github.com/photorelay/service/internal/metrics"
	appMiddleware "github.com/photorelay/service/internal/middleware"
	"github.com/photorelay/service/internal/photo"
	"github.com/photorelay/service/internal/response"
	"github.com/photorelay/service/internal/upload"
)

// Deps are the handlers and logger the router is built from.
type Deps struct {
	Logger  zerolog.Logger
	Uploads *upload.Handler
	Photos  *photo.Handler
}

// NewRouter returns the service's route table.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(d.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w)
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", metrics.Handler())

	// Swagger UI at /swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload-s3", d.Uploads.Upload)
		r.Options("/upload-s3", d.Uploads.Preflight)
		r.Get("/get-photos-s3", d.Photos.List)
	})

	return r
}
