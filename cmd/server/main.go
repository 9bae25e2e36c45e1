package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/storyforge/studio/pkg/studio/api"
	"github.com/storyforge/studio/pkg/studio/config"
)

// Env carries process-level settings read from the environment. Service
// wiring (database, storage) is handled by the config package on top.
type Env struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
}

func main() {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		slog.Error("Failed to read environment", "error", err)
		os.Exit(1)
	}

	logger := newLogger(env.Environment)
	slog.SetDefault(logger)

	cfg, err := config.Load(config.WithEnv(""))
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	svc, store, err := cfg.Build(logger)
	if err != nil {
		logger.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	if env.Environment == "development" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	storyboard := api.NewStoryboardHandler(svc)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/projects", api.NewProjectHandler(svc).Routes())
		r.Mount("/items", api.NewItemHandler(svc).Routes())
		r.Mount("/episodes", storyboard.EpisodeRoutes())
		r.Mount("/scenes", storyboard.SceneRoutes())
		r.Mount("/shots", storyboard.ShotRoutes())
		r.Mount("/assets", api.NewAssetHandler(svc).Routes())
		r.Mount("/events", api.NewEventHandler(svc).Routes())
	})
	r.Mount("/files", api.NewFilesHandler(store).Routes())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", env.Port),
		Handler: r,
	}

	go func() {
		logger.Info("Studio server starting",
			"port", env.Port,
			"environment", env.Environment,
			"database", cfg.DatabaseType,
			"storage", cfg.Storage.Type)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exiting")
}

func newLogger(environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
