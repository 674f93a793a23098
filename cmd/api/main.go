package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/vaultpass/pwtool/internal/config"
	"github.com/vaultpass/pwtool/internal/crypto"
	"github.com/vaultpass/pwtool/internal/handler"
	"github.com/vaultpass/pwtool/internal/middleware"
	"github.com/vaultpass/pwtool/internal/repository"
	"github.com/vaultpass/pwtool/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	gen := crypto.NewGenerator(crypto.SystemSource())

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Accounts and history need the database; generation works without it.
	var genService *service.GeneratorService
	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err == nil {
		err = repository.Migrate(context.Background(), db)
	}
	if err != nil {
		slog.Warn("database unavailable, accounts and history disabled", "error", err)
		if db != nil {
			db.Close()
		}
		genService = service.NewGeneratorService(gen, nil, cfg.GeneratorWorkers)
	} else {
		defer db.Close()

		historyRepo := repository.NewHistoryRepository(db)
		genService = service.NewGeneratorService(gen, historyRepo, cfg.GeneratorWorkers)

		userRepo := repository.NewUserRepository(db)
		authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
		authHandler := handler.NewAuthHandler(authService)
		historyHandler := handler.NewHistoryHandler(service.NewHistoryService(historyRepo))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
			r.Post("/api/v1/auth/register", authHandler.HandleRegister)
			r.Post("/api/v1/auth/login", authHandler.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Get("/api/v1/auth/me", authHandler.HandleMe)
			r.Get("/api/v1/history", historyHandler.HandleList)
		})
	}

	genHandler := handler.NewGeneratorHandler(genService)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Use(middleware.OptionalJWTAuth(cfg.JWTSecret))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/export/{format}", genHandler.HandleExport)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "workers", cfg.GeneratorWorkers)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
