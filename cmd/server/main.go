package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	adsconfig "adclad/internal/ads/config"
	authconfig "adclad/internal/auth/config"
	"adclad/internal/di"
	"adclad/internal/shared/database"
	"adclad/internal/shared/logger"
	"adclad/internal/shared/response"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"localhost"`
	Port string `env:"SERVER_PORT" envDefault:"3000"`
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	serverCfg := &ServerConfig{}
	if err := env.Parse(serverCfg); err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}
	dbCfg := database.Config{}
	if err := env.Parse(&dbCfg); err != nil {
		log.Fatalf("Failed to load database configuration: %v", err)
	}
	authCfg, err := authconfig.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load auth configuration: %v", err)
	}
	adsCfg, err := adsconfig.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load ads configuration: %v", err)
	}

	logCfg := logger.Config{}
	if err := env.Parse(&logCfg); err != nil {
		log.Fatalf("Failed to load logging configuration: %v", err)
	}
	appLogger := logger.New(logCfg)
	appLogger.Info("Application configuration loaded successfully")

	container := di.NewContainer(appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := container.InitializeDatabase(ctx, dbCfg); err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	appLogger.Info("MongoDB connection established successfully")

	if err := container.InitializeAuth(authCfg); err != nil {
		appLogger.Fatalf("Failed to initialize auth module: %v", err)
	}
	appLogger.Info("Auth module initialized successfully")

	if err := container.InitializeAds(ctx, adsCfg); err != nil {
		appLogger.Fatalf("Failed to initialize ads module: %v", err)
	}
	appLogger.Info("Ads module initialized successfully")

	app := fiber.New(fiber.Config{
		AppName:      "adclad API v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: response.Error,
	})

	authModule := container.GetAuthModule()
	adsModule := container.GetAdsModule()
	mw := authModule.GetMiddleware()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(mw.RequestID())
	app.Use(mw.RequestContext())
	app.Use(mw.Credentials())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(mw.SecurityHeaders())

	app.Get("/health", func(c *fiber.Ctx) error {
		healthCtx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		if err := container.HealthCheck(healthCtx); err != nil {
			appLogger.Errorf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "UNHEALTHY",
				"error":   err.Error(),
				"message": "One or more services are unhealthy",
			})
		}

		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"message":   "adclad API is running",
			"timestamp": time.Now().UTC(),
			"modules": fiber.Map{
				"auth": "initialized",
				"ads":  "initialized",
			},
		})
	})

	api := app.Group("/api")
	authModule.RegisterRoutes(api)
	adsModule.RegisterRoutes(api, mw)
	adsModule.RegisterFeed(app, mw)
	appLogger.Info("Routes registered")

	serverAddr := fmt.Sprintf("%s:%s", serverCfg.Host, serverCfg.Port)
	appLogger.Infof("All modules initialized. Starting HTTP server on %s", serverAddr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			appLogger.Errorf("Server failed to start: %v", err)
			return
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}
		appLogger.Info("HTTP server stopped")
	}

	appLogger.Info("Application stopped gracefully")
}
