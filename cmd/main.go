// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/creativecommunity/registration/internal/config"
	"github.com/creativecommunity/registration/internal/database"
	"github.com/creativecommunity/registration/internal/handler"
	"github.com/creativecommunity/registration/internal/notify"
	"github.com/creativecommunity/registration/internal/repository"
	"github.com/creativecommunity/registration/internal/service"
	"github.com/creativecommunity/registration/internal/wizard"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	slog.Info("connected to postgres")

	// ── 2. Wire up layers ────────────────────────────────────────────────
	repo := repository.NewRegistrationRepository(pool)

	whatsapp := notify.NewWhatsAppClient(
		cfg.WhatsApp.APIURL,
		cfg.WhatsApp.APIToken,
		cfg.WhatsApp.CountryCode,
		cfg.WhatsApp.SendTimeout,
	)
	dispatcher := notify.NewDispatcher(whatsapp, notify.GroupLinks{
		Creativity: cfg.WhatsApp.CreativityGroupLink,
		StageVibe:  cfg.WhatsApp.StageVibeGroupLink,
	}, cfg.WhatsApp.CountryCode, cfg.WhatsApp.SendTimeout)
	dispatcher.Start()

	svc := service.NewRegistrationService(repo, dispatcher)
	sessions := wizard.NewSessions(svc, svc)
	regHandler := handler.NewRegistrationHandler(sessions, svc)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger)          // structured access log
	r.Use(handler.CORS)            // permissive CORS for demo

	// Health
	r.Get("/health", handler.HealthCheck)

	// Wizard sessions
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", regHandler.CreateSession)
		r.Get("/{id}", regHandler.GetSession)
		r.Delete("/{id}", regHandler.DeleteSession)
		r.Put("/{id}/fields", regHandler.SetField)
		r.Put("/{id}/selections", regHandler.Toggle)
		r.Post("/{id}/next", regHandler.Next)
		r.Post("/{id}/previous", regHandler.Previous)
	})

	// Admin API
	r.Route("/registrations", func(r chi.Router) {
		r.Get("/", regHandler.ListRegistrations)
		r.Get("/count", regHandler.CountRegistrations)
		r.Delete("/{id}", regHandler.DeleteRegistration)
		r.Delete("/", regHandler.DeleteAllRegistrations)
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server", "error", err)
			os.Exit(1)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	// Drain queued notifications before exiting.
	dispatcher.Close()
	slog.Info("server stopped")
}
