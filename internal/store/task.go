package store

import (
	"context"

	"github.com/tasksapi/tasks-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task and returns the identifier assigned to it.
	// The identifier is one more than the largest identifier in the store,
	// or 1 when the store is empty.
	Create(ctx context.Context, task *domain.Task) (int, error)

	// GetByID retrieves a task by its identifier.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int) (*domain.Task, error)

	// List returns every stored task keyed by identifier.
	// Returns an empty, non-nil map when the store is empty.
	List(ctx context.Context) (map[int]*domain.Task, error)

	// Update replaces the task stored under id.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int, task *domain.Task) error
}
