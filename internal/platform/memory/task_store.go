package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tasksapi/tasks-api/internal/domain"
	"github.com/tasksapi/tasks-api/internal/platform/logger"
	"github.com/tasksapi/tasks-api/internal/store"
)

// TaskStore implements store.TaskStore with a map guarded by a mutex.
// Tasks are copied on the way in and out so callers never share memory
// with the store.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int]domain.Task
	maxID  int
	logger *slog.Logger
}

// NewTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		tasks:  make(map[int]domain.Task),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
// The new identifier is the current maximum plus one. Identifiers are never
// removed from the map, so maxID always equals the largest key.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task == nil {
		return 0, store.NewStoreError("task", "create", "task is nil", store.ErrInvalidEntity)
	}
	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.maxID + 1
	s.tasks[id] = *task
	s.maxID = id

	log.Debug("task created", slog.Int("task_id", id))
	return id, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id int) (*domain.Task, error) {
	s.mu.RLock()
	task, ok := s.tasks[id]
	s.mu.RUnlock()

	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).
			Debug("task not found", slog.Int("task_id", id))
		return nil, store.ErrTaskNotFound
	}

	return &task, nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context) (map[int]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[int]*domain.Task, len(s.tasks))
	for id, task := range s.tasks {
		task := task
		result[id] = &task
	}

	return result, nil
}

// Update implements store.TaskStore.Update.
// The stored record is replaced wholesale.
func (s *TaskStore) Update(ctx context.Context, id int, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task == nil {
		return store.NewStoreError("task", "update", "task is nil", store.ErrInvalidEntity)
	}
	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int("task_id", id))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		log.Debug("task not found for update", slog.Int("task_id", id))
		return store.ErrTaskNotFound
	}

	s.tasks[id] = *task

	log.Debug("task updated", slog.Int("task_id", id))
	return nil
}
