package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/whoamaiii/kreativium/backend/internal/config"
	"github.com/whoamaiii/kreativium/backend/internal/handlers"
	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/middleware"
	"github.com/whoamaiii/kreativium/backend/internal/observability"
	"github.com/whoamaiii/kreativium/backend/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	log, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting kreativium API server",
		logger.String("env", cfg.Server.Env),
		logger.String("storage", cfg.Storage.Driver),
	)

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Server.Env,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("failed to flush traces", logger.Err(err))
		}
	}()

	// Initialize repositories
	store, err := openStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close store", logger.Err(err))
		}
	}()

	idempotency, rdb, err := openIdempotency(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Initialize services
	builder := service.NewCorrelationBuilder(store.Observations, store.Activities, store.Links)
	observationService := service.NewObservationService(store.Observations)
	activityService := service.NewActivityService(store.Activities)
	linkService := service.NewLinkService(store.Observations, store.Activities, store.Links)
	insightsService := service.NewInsightsService(builder, store.Observations, store.Recommendations, loc)

	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst, "general")
		defer limiter.Close()
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Env:            cfg.Server.Env,
		ServiceName:    cfg.Tracing.ServiceName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log,
		Verifier:       middleware.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		RateLimiter:    limiter,
		Idempotency:    idempotency,
		Observations:   handlers.NewObservationHandler(observationService),
		Activities:     handlers.NewActivityHandler(activityService),
		Links:          handlers.NewLinkHandler(linkService),
		Insights:       handlers.NewInsightsHandler(insightsService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
