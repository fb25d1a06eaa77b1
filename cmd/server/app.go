package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tasksapi/tasks-api/internal/config"
	"github.com/tasksapi/tasks-api/internal/events"
	"github.com/tasksapi/tasks-api/internal/platform/memory"
	"github.com/tasksapi/tasks-api/internal/service"
	"github.com/tasksapi/tasks-api/internal/store"
)

// application holds the shared application dependencies. The task store is
// the only state and lives as long as the process.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   store.TaskStore
	taskService service.TaskService

	eventEmitter events.EventEmitter
}

// newApplication creates a new application instance with all dependencies
// initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	app.taskStore = memory.NewTaskStore(logger)

	if cfg.Events.Enabled {
		emitter := events.NewInMemoryEventEmitter(logger)
		emitter.RegisterHandler(events.NewAuditLogHandler(logger))
		app.eventEmitter = emitter
		logger.Info("Task change events enabled")
	} else {
		app.eventEmitter = events.NopEmitter{}
	}

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup runs after the HTTP server has stopped. The in-memory store is
// discarded with the process.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
