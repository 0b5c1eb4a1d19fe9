package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/clubdesk/bracket-engine/brackets"
	"github.com/clubdesk/bracket-engine/config"
	"github.com/clubdesk/bracket-engine/db"
	"github.com/clubdesk/bracket-engine/handlers"
	"github.com/clubdesk/bracket-engine/middleware"
	"github.com/clubdesk/bracket-engine/repositories"
	api "github.com/clubdesk/bracket-engine/routes"
	"github.com/clubdesk/bracket-engine/services"
	"github.com/clubdesk/bracket-engine/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	var snapshots storage.SnapshotStore
	if cfg.SnapshotsEnabled() {
		snapshots, err = storage.NewCloudflareR2SnapshotStore(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize snapshot store", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("bracket snapshot store initialized")
	} else {
		logger.Info("bracket snapshot store disabled")
	}

	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	logger.Info("repositories initialized")

	bracketService := services.NewBracketService(dbConn, eventRepo, matchRepo, standingRepo, wsHub, snapshots, logger)
	resultService := services.NewResultService(dbConn, eventRepo, matchRepo, standingRepo, wsHub, logger)
	standingService := services.NewStandingService(eventRepo, standingRepo)
	logger.Info("services initialized")

	bracketHandler := handlers.NewBracketHandler(bracketService)
	resultHandler := handlers.NewResultHandler(resultService)
	standingHandler := handlers.NewStandingHandler(standingService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Config{
			Authenticator:  middleware.NewAuthenticator(cfg.JWTSecretKey),
			ServiceKeyHash: cfg.ServiceKeyHash,
			AllowedOrigins: cfg.AllowedOrigins,
		},
		bracketHandler,
		resultHandler,
		standingHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
