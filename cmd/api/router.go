package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/davemarr/asset-inventory/internal/config"
	"github.com/davemarr/asset-inventory/internal/handlers"
	"github.com/davemarr/asset-inventory/internal/middleware"
	"github.com/davemarr/asset-inventory/internal/models"
	"github.com/davemarr/asset-inventory/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repos, handlers, and the middleware chain into the full API.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	assetRepo := repo.NewAssetRepo(db)

	authHandler := &handlers.AuthHandler{
		Users:       userRepo,
		Secret:      []byte(cfg.JWTSecret),
		TokenExpiry: time.Duration(cfg.JWTExpireHours) * time.Hour,
	}
	assetHandler := handlers.NewAssetHandler(assetRepo)

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(useTLS))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/api/health", handlers.Health)
	r.Get("/ready", handlers.Ready(db))
	r.Handle("/metrics", promhttp.Handler())

	loginLimiter := middleware.LoginRateLimiter()
	r.With(loginLimiter.Middleware).Post("/api/auth/login", authHandler.Login)

	// Everything below requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth([]byte(cfg.JWTSecret)))

		r.Get("/api/auth/verify", authHandler.Verify)

		r.Route("/api/assets", func(r chi.Router) {
			r.Get("/", assetHandler.ListAssets)
			r.Post("/", assetHandler.CreateAsset)
			r.Get("/stats/overview", assetHandler.StatsOverview)
			r.Get("/{id}", assetHandler.GetAsset)
			r.Put("/{id}", assetHandler.UpdateAsset)
			r.With(middleware.RequireRole(models.RoleAdmin)).Delete("/{id}", assetHandler.DeleteAsset)
		})
	})

	return r
}
