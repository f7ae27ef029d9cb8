package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davemarr/asset-inventory/internal/config"
	"github.com/davemarr/asset-inventory/internal/db"
	"github.com/davemarr/asset-inventory/internal/repo"
	"github.com/davemarr/asset-inventory/internal/scheduler"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	setupLogger(cfg.LogFormat)

	database, err := db.Connect(cfg)
	if err != nil {
		slog.Error("connect to database", "err", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		slog.Error("run migrations", "err", err)
		os.Exit(1)
	}

	if err := db.Bootstrap(context.Background(), repo.NewUserRepo(database)); err != nil {
		slog.Error("bootstrap accounts", "err", err)
		os.Exit(1)
	}

	if cfg.WarrantyReportEnabled {
		c, err := scheduler.Run(repo.NewAssetRepo(database), cfg.WarrantyReportCron, cfg.WarrantyReportDays)
		if err != nil {
			slog.Error("start warranty report job", "err", err)
			os.Exit(1)
		}
		defer c.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(database, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
		slog.Info("starting server", "port", cfg.Port, "tls", useTLS, "env", cfg.Env)
		if useTLS {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			errCh <- srv.ListenAndServe()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "err", err)
		}
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
