package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pushrelay/api/internal/config"
	"github.com/pushrelay/api/internal/firebase"
	"github.com/pushrelay/api/internal/handler"
	"github.com/pushrelay/api/internal/middleware"
	"github.com/pushrelay/api/internal/repository"
	"github.com/pushrelay/api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize Firebase clients
	ctx := context.Background()
	clients, err := firebase.NewClients(ctx, firebase.Config{
		CredentialsPath: cfg.Firebase.CredentialsPath,
		ProjectID:       cfg.Firebase.ProjectID,
	})
	if err != nil {
		slog.Error("failed to initialize firebase", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = clients.Close() }()

	slog.Info("connected to firebase",
		slog.String("collection", cfg.Firebase.TokenCollection),
	)

	// Initialize repositories
	tokenRepo := repository.NewTokenRepository(repository.TokenRepositoryConfig{
		Client:     clients.Firestore,
		Collection: cfg.Firebase.TokenCollection,
		MaxTokens:  cfg.Firebase.MaxTokens,
	})

	// Initialize services
	pushService := service.NewPushService(service.PushServiceConfig{
		Sender: clients.Messaging,
	})

	// Initialize handlers
	pushHandler := handler.NewPushHandler(handler.PushHandlerConfig{
		Tokens:     tokenRepo,
		Dispatcher: pushService,
	})

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.Push.RateLimitPerMin,
		Window: time.Minute,
	})
	defer rateLimiter.Stop()

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Send endpoint, behind the API key check and per-client rate limit
	sendMiddleware := middleware.Chain(
		http.HandlerFunc(pushHandler.SendPush),
		middleware.APIKey(cfg.Push.APIKey),
		middleware.RateLimit(rateLimiter),
	)
	mux.Handle("POST /api/send-push", sendMiddleware)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins, cfg.Server.AllowedOriginSuffixes),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
