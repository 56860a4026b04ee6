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

	"github.com/SscSPs/aud_rates_app/internal/adapters/oxr"
	"github.com/SscSPs/aud_rates_app/internal/core/services"
	"github.com/SscSPs/aud_rates_app/internal/handlers"
	"github.com/SscSPs/aud_rates_app/internal/middleware"
	"github.com/SscSPs/aud_rates_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// @title AUD Rates API
// @version 1.0
// @description AUD-based latest rates, conversions and rate history.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateProvider, err := oxr.NewClient(cfg.Upstream)
	if err != nil {
		logger.Error("Failed to create upstream client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.FrontendBaseURL))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, services.NewServiceContainer(rateProvider))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("upstream", cfg.Upstream.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
