package main

import (
	"bytes"
	"context"
	_ "embed"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	authconfig "adclad/internal/auth/config"
	"adclad/internal/di"
	"adclad/internal/shared/database"
	"adclad/internal/shared/logger"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

func main() {
	file := flag.String("file", "", "fixture file (defaults to the bundled fixtures)")
	reset := flag.Bool("reset", false, "drop the database before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	dbCfg := database.Config{}
	if err := env.Parse(&dbCfg); err != nil {
		log.Fatalf("Failed to load database configuration: %v", err)
	}
	authCfg, err := authconfig.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load auth configuration: %v", err)
	}

	logCfg := logger.Config{}
	if err := env.Parse(&logCfg); err != nil {
		log.Fatalf("Failed to load logging configuration: %v", err)
	}
	appLogger := logger.New(logCfg)

	var src io.Reader = bytes.NewReader(defaultFixtures)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			appLogger.Fatalf("Failed to open fixtures: %v", err)
		}
		defer f.Close()
		src = f
	}
	fixtures, err := LoadFixtures(src)
	if err != nil {
		appLogger.Fatalf("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container := di.NewContainer(appLogger)
	defer container.Close()

	if err := container.InitializeDatabase(ctx, dbCfg); err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	if *reset {
		if err := container.Store.DropDatabase(ctx); err != nil {
			appLogger.Fatalf("Failed to drop database: %v", err)
		}
		if err := container.Store.EnsureIndexes(ctx, database.DefaultIndexes()); err != nil {
			appLogger.Fatalf("Failed to recreate indexes: %v", err)
		}
		appLogger.Warnf("Database %s dropped", dbCfg.DatabaseName)
	}
	if err := container.InitializeAuth(authCfg); err != nil {
		appLogger.Fatalf("Failed to initialize auth module: %v", err)
	}
	if err := container.InitializeAds(ctx, nil); err != nil {
		appLogger.Fatalf("Failed to initialize ads module: %v", err)
	}

	seeder := NewSeeder(
		container.GetAuthModule().GetRepository(),
		container.GetAdsModule().GetStores(),
		authCfg.BcryptCost,
		appLogger,
	)
	if err := seeder.Seed(ctx, fixtures); err != nil {
		appLogger.Errorf("Seeding failed: %v", err)
		return
	}
	appLogger.Info("Seeding complete")
}
