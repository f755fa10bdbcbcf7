package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g main.go -o ../../docs --parseDependency

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"

	"iss-sky-scanner/internal/bootstrap"
	"iss-sky-scanner/internal/config"

	"github.com/joho/godotenv"

	_ "iss-sky-scanner/docs" // Import generated docs
)

// @title ISS Sky Scanner API
// @version 1.0
// @description Live and historical position of the International Space Station, with facts about the place below it.
// @BasePath /
func main() {
	// A .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	svc, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create services: %v", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("failed to close services", "error", err)
		}
	}()

	// Create app
	app := NewApp(cfg, logger, svc)

	// Start server
	logger.Info("starting server", "addr", cfg.GetServerAddr())
	if err := app.Run(cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		log.Fatal(err)
	}
}
