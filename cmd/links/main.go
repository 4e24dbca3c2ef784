package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkveo/internal/config"
	folderList "linkveo/internal/http_server/handlers/folder/list"
	folderRemove "linkveo/internal/http_server/handlers/folder/remove"
	folderSave "linkveo/internal/http_server/handlers/folder/save"
	linkList "linkveo/internal/http_server/handlers/link/list"
	linkRemove "linkveo/internal/http_server/handlers/link/remove"
	linkSave "linkveo/internal/http_server/handlers/link/save"
	"linkveo/internal/http_server/middleware/bearer"
	"linkveo/internal/links"
	"linkveo/internal/scraper"
	"linkveo/internal/storage/postgres"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator/v10"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoadLinks("./config/links.yaml")

	log := setupLogger(cfg.Env)

	log.Info("starting link service", slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("Shutdown signal received")
		cancel()
	}()

	storage, err := postgres.NewLinkRepo(ctx, cfg.Postgres)
	if err != nil {
		log.Error("failed to connect postgres", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	linkService := links.New(log, storage, storage, scraper.New(cfg.Scraper))

	router := setupRouter(log, linkService, cfg.Tokens.Secret)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server is running", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", slog.String("err", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", slog.String("err", err.Error()))
	} else {
		log.Info("Server stopped gracefully")
	}

	log.Info("Link service stopped")
}

func setupRouter(
	log *slog.Logger,
	linkService *links.Links,
	tokenSecret string,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	validate := validator.New()

	// every route requires a bearer token minted by the identity service;
	// verification is local, no call back to the issuer
	r.Group(func(r chi.Router) {
		r.Use(bearer.New(log, tokenSecret))

		r.Post("/links", linkSave.New(log, validate, linkService))
		r.Get("/links", linkList.New(log, linkService))
		r.Delete("/links/{linkID}", linkRemove.New(log, linkService))

		r.Post("/folders", folderSave.New(log, validate, linkService))
		r.Get("/folders", folderList.New(log, linkService))
		r.Delete("/folders/{folderID}", folderRemove.New(log, linkService))
	})

	return r
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
