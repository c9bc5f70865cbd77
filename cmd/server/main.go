package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"macromatch-go-api/internal/app"
	"macromatch-go-api/internal/config"
	"macromatch-go-api/internal/handlers"
	"macromatch-go-api/internal/metrics"
	"macromatch-go-api/pkg/logger"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback := logger.Nop()
		if l, lerr := logger.New(logger.Config{Level: "error"}); lerr == nil {
			fallback = l
		}
		fallback.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		os.Exit(1)
	}

	metrics.Register()

	// Initialize services
	ctx := context.Background()
	components := app.Build(ctx, cfg, log)

	healthHandler := handlers.NewHealthHandler(
		handlers.ReadinessCheck{Name: "indicators", Check: func(ctx context.Context) error {
			_, err := components.Advisor.Indicators(ctx)
			return err
		}},
	)

	// Create Fiber app with optimized config
	server := fiber.New(fiber.Config{
		Prefork:       false,
		StrictRouting: true,
		CaseSensitive: true,
		ServerHeader:  "MacroMatch-API",
		AppName:       "MacroMatch v" + handlers.Version,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		IdleTimeout:   cfg.Server.IdleTimeout,
		BodyLimit:     cfg.Server.BodyLimit,
		ErrorHandler:  handlers.NewErrorHandler(log),
	})

	// Middleware stack
	server.Use(recover.New())
	server.Use(requestid.New())
	server.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	server.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))
	server.Use(limiter.New(limiter.Config{
		Max:        cfg.Server.RateLimitPerMinute,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	}))

	// Routes
	server.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "MacroMatch API",
			"version": handlers.Version,
			"status":  "running",
		})
	})

	server.Get("/health", healthHandler.Health)
	server.Get("/health/ready", healthHandler.Ready)
	server.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(server, components.Advisor)

	// Graceful shutdown
	go func() {
		if err := server.Listen(":" + cfg.Server.Port); err != nil {
			log.Error("server stopped", logger.Error(err))
			os.Exit(1)
		}
	}()

	log.Info("MacroMatch API started",
		logger.String("port", cfg.Server.Port),
		logger.String("environment", cfg.Environment),
		logger.Strings("cache_layers", components.Cache.Layers()),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", logger.Error(err))
	}
	if err := components.Close(); err != nil {
		log.Warn("closing caches", logger.Error(err))
	}

	log.Info("server shutdown complete")
}
