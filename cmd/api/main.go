package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/brightframe/studio-backend/internal/config"
	"github.com/brightframe/studio-backend/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; the process environment wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	app, err := InitializeAPI(cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize api", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zl.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			zl.Error("shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
