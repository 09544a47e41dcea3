// Package main is the entry point for the trip sharing API server.
// It wires dependencies together and starts the server. No business logic
// belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/tripshare/tripshare/backend/internal/auth"
	"github.com/tripshare/tripshare/backend/internal/config"
	"github.com/tripshare/tripshare/backend/internal/handler"
	"github.com/tripshare/tripshare/backend/internal/mailer"
	"github.com/tripshare/tripshare/backend/internal/middleware"
	"github.com/tripshare/tripshare/backend/internal/repo"
	"github.com/tripshare/tripshare/backend/internal/service"
	"github.com/tripshare/tripshare/backend/migrations"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(context.Background(), sqlDB)
		sqlDB.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", applied)
	}

	if cfg.SMTP.Host == "" {
		slog.Warn("SMTP_HOST not set; share and invitation emails will fail")
	}

	// --- Services ---------------------------------------------------------
	users := repo.NewUserRepo(pool)
	trips := repo.NewTripRepo(pool)
	messages := repo.NewMessageRepo(pool)
	tokens := auth.NewTokens(cfg.JWTSecret)
	mail := mailer.New(mailer.NewSMTPSender(cfg.SMTP), cfg.AppURL)

	srv := handler.NewServer(handler.Deps{
		Auth:        service.NewAuthService(users, tokens),
		Users:       service.NewUserService(users),
		Messages:    service.NewMessageService(messages, users),
		Trips:       service.NewTripService(trips),
		Shares:      service.NewShareService(trips, users, mail),
		Export:      service.NewExportService(trips),
		Tokens:      tokens,
		Logger:      logger,
		Development: cfg.IsDevelopment(),
	})

	// --- Router -----------------------------------------------------------
	// CORS runs before the body limit so preflights never touch the body.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "env", cfg.Env)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
