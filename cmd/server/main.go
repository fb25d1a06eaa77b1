// Package main implements the entry point for the tasks API server, an
// in-memory task tracker exposed over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/tasksapi/tasks-api/internal/config"
	"github.com/tasksapi/tasks-api/internal/platform/logger"
)

// main is the entry point for the tasks-api server.
// It loads configuration, sets up logging, builds the application and
// serves HTTP until interrupted.
func main() {
	cfg, l, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(cfg, l)
	if err != nil {
		l.Error("Failed to create application", "error", err)
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		l.Error("Application stopped with error", "error", err)
		log.Fatalf("Application error: %v", err)
	}
}

// initializeApp loads configuration and sets up the logger.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"events_enabled", cfg.Events.Enabled)

	return cfg, l, nil
}
