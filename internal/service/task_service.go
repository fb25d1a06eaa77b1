package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tasksapi/tasks-api/internal/domain"
	"github.com/tasksapi/tasks-api/internal/events"
	"github.com/tasksapi/tasks-api/internal/platform/logger"
	"github.com/tasksapi/tasks-api/internal/store"
)

// TaskService provides task-related operations.
type TaskService interface {
	// CreateTask stores a new task and returns its identifier and the stored task.
	CreateTask(ctx context.Context, task *domain.Task) (int, *domain.Task, error)

	// GetTask retrieves a task by its identifier.
	GetTask(ctx context.Context, id int) (*domain.Task, error)

	// ListTasks returns every task keyed by identifier.
	ListTasks(ctx context.Context) (map[int]*domain.Task, error)

	// UpdateTask replaces the task stored under id.
	UpdateTask(ctx context.Context, id int, task *domain.Task) (*domain.Task, error)

	// DeleteTask marks the task incomplete. The task stays in the store.
	DeleteTask(ctx context.Context, id int) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore    store.TaskStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if taskStore is nil. A nil emitter disables events and a
// nil logger uses slog.Default().
func NewTaskService(
	taskStore store.TaskStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, NewTaskServiceError("new_task_service", "task store cannot be nil", nil)
	}
	if eventEmitter == nil {
		eventEmitter = events.NopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:    taskStore,
		eventEmitter: eventEmitter,
		logger:       logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(ctx context.Context, task *domain.Task) (int, *domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := s.taskStore.Create(ctx, task)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return 0, nil, err
		}
		return 0, nil, NewTaskServiceError("create_task", "failed to store task", err)
	}

	log.Info("task created", slog.Int("task_id", id))
	s.emit(ctx, events.TypeTaskCreated, id, task)

	stored := *task
	return id, &stored, nil
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(ctx context.Context, id int) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrapLookupError("get_task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks.
func (s *taskServiceImpl) ListTasks(ctx context.Context) (map[int]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.Update(ctx, id, task); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, s.wrapLookupError("update_task", err)
	}

	log.Info("task updated", slog.Int("task_id", id))
	s.emit(ctx, events.TypeTaskUpdated, id, task)

	updated := *task
	return &updated, nil
}

// DeleteTask implements TaskService.DeleteTask.
// The record is read, marked incomplete and written back under the same id.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return s.wrapLookupError("delete_task", err)
	}

	task.MarkIncomplete()

	if err := s.taskStore.Update(ctx, id, task); err != nil {
		return s.wrapLookupError("delete_task", err)
	}

	log.Info("task soft-deleted", slog.Int("task_id", id))
	s.emit(ctx, events.TypeTaskSoftDeleted, id, task)

	return nil
}

// wrapLookupError maps store not-found errors to ErrTaskNotFound and wraps
// everything else.
func (s *taskServiceImpl) wrapLookupError(operation string, err error) error {
	if store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}
	return NewTaskServiceError(operation, "store operation failed", err)
}

// emit publishes a task event. Failures are logged and never returned: the
// store change has already happened.
func (s *taskServiceImpl) emit(ctx context.Context, eventType string, id int, task *domain.Task) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewTaskEvent(eventType, id, task)
	if err != nil {
		log.Error("failed to build task event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType),
			slog.Int("task_id", id))
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit task event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType),
			slog.Int("task_id", id))
	}
}
