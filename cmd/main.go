package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/finchboard/tickerlane/internal/config"
	"github.com/finchboard/tickerlane/internal/events"
	"github.com/finchboard/tickerlane/internal/handler"
	"github.com/finchboard/tickerlane/internal/health"
	"github.com/finchboard/tickerlane/internal/infra/feedrecorder"
	"github.com/finchboard/tickerlane/internal/infra/repository"
	"github.com/finchboard/tickerlane/internal/observability"
	"github.com/finchboard/tickerlane/internal/observability/logging"
	"github.com/finchboard/tickerlane/internal/observability/metrics"
	"github.com/finchboard/tickerlane/internal/observability/middleware"
	"github.com/finchboard/tickerlane/internal/service/backlog"
	"github.com/finchboard/tickerlane/internal/service/lanepool"
	"github.com/finchboard/tickerlane/internal/service/pacing"
	"github.com/finchboard/tickerlane/internal/service/ticker"
	"github.com/finchboard/tickerlane/internal/service/traversal"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	tickerMetrics, err := metrics.NewTickerMetrics()
	if err != nil {
		slog.Error("failed to initialize ticker metrics", slog.String("error", err.Error()))
		return 1
	}

	recorderCfg := feedrecorder.LoadConfig()
	recorder, err := feedrecorder.NewRecorder(ctx, recorderCfg)
	if err != nil {
		slog.Error("failed to initialize feed recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close feed recorder", slog.String("error", err.Error()))
		}
	}()

	redisOpts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	headlineRepo := repository.NewHeadlineRepository(redisClient)

	seed := cfg.Ticker.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	bus := events.NewBus()
	scheduler := ticker.New(
		ticker.Config{
			DefaultExtent: cfg.Ticker.DefaultExtent,
			RetryDelay:    cfg.Ticker.RetryDelay,
		},
		backlog.New(rng),
		lanepool.New(cfg.Ticker.LaneCount, cfg.Ticker.LaneRates, lanepool.NewPicker(cfg.Ticker.Picker, rng)),
		traversal.NewCalculator(
			cfg.Ticker.FieldLength,
			cfg.Ticker.ClearanceFactor,
			cfg.Ticker.DestroyBuffer,
			cfg.Ticker.ReuseGapMin,
			cfg.Ticker.ReuseGapMax,
			rng,
		),
		pacing.NewStrategy(cfg.Ticker.Pacing, cfg.Ticker.MinDispatchInterval, cfg.Ticker.MaxDispatchInterval, rng),
		bus,
		tickerMetrics,
	)
	defer func() {
		if scheduler.IsRunning() {
			if err := scheduler.Stop(); err != nil {
				slog.Warn("failed to stop scheduler", slog.String("error", err.Error()))
			}
		}
	}()

	bridge := feedrecorder.NewBridge(bus, recorder)
	bridge.Start(ctx)
	defer bridge.Stop()

	tickerHandler := handler.NewTickerHandler(scheduler, headlineRepo)
	headlineHandler := handler.NewHeadlineHandler(headlineRepo, scheduler)
	streamHandler := handler.NewStreamHandler(bus)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/api/v1/ticker/events"},
		Module:      logging.Module("tickerlane"),
		TracerName:  "github.com/finchboard/tickerlane/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, scheduler, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/ticker/start", tickerHandler.HandleStart)
		v1.POST("/ticker/stop", tickerHandler.HandleStop)
		v1.GET("/ticker/status", tickerHandler.HandleStatus)
		v1.GET("/ticker/events", streamHandler.HandleStream)
		v1.POST("/ticker/events/:id/activate", tickerHandler.HandleActivate)
		v1.DELETE("/ticker/events/:id", tickerHandler.HandleDestroy)
		v1.POST("/ticker/measurements", tickerHandler.HandleMeasurement)

		v1.POST("/headlines", headlineHandler.HandleCreate)
		v1.GET("/headlines", headlineHandler.HandleList)
		v1.PUT("/headlines", headlineHandler.HandleReplace)
		v1.DELETE("/headlines/:id", headlineHandler.HandleDelete)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("lane_count", cfg.Ticker.LaneCount),
			slog.String("lane_picker", string(cfg.Ticker.Picker)),
			slog.String("pacing", string(cfg.Ticker.Pacing)),
			slog.Float64("field_length", cfg.Ticker.FieldLength),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "tickerlane"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:  env,
		LogLevel:     cfg.LogLevel,
		SamplingRate: 1.0,
	})
}
