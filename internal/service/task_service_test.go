package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasksapi/tasks-api/internal/domain"
	"github.com/tasksapi/tasks-api/internal/events"
	"github.com/tasksapi/tasks-api/internal/platform/memory"
	"github.com/tasksapi/tasks-api/internal/store"
)

// recordingEmitter captures emitted events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.TaskEvent
	err    error
}

func (e *recordingEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *recordingEmitter) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

// MockTaskStore is a function-field mock of store.TaskStore.
type MockTaskStore struct {
	CreateFn  func(ctx context.Context, task *domain.Task) (int, error)
	GetByIDFn func(ctx context.Context, id int) (*domain.Task, error)
	ListFn    func(ctx context.Context) (map[int]*domain.Task, error)
	UpdateFn  func(ctx context.Context, id int, task *domain.Task) error
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) (int, error) {
	return m.CreateFn(ctx, task)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id int) (*domain.Task, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *MockTaskStore) List(ctx context.Context) (map[int]*domain.Task, error) {
	return m.ListFn(ctx)
}

func (m *MockTaskStore) Update(ctx context.Context, id int, task *domain.Task) error {
	return m.UpdateFn(ctx, id, task)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (TaskService, *recordingEmitter) {
	t.Helper()
	emitter := &recordingEmitter{}
	svc, err := NewTaskService(memory.NewTaskStore(discardLogger()), emitter, discardLogger())
	require.NoError(t, err)
	return svc, emitter
}

func newTask(t *testing.T, title, description string, completed *bool) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, description, completed)
	require.NoError(t, err)
	return task
}

func TestNewTaskService(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		svc, err := NewTaskService(nil, nil, nil)
		assert.Nil(t, svc)
		var svcErr *TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "new_task_service", svcErr.Operation)
	})

	t.Run("nil emitter and logger are allowed", func(t *testing.T) {
		svc, err := NewTaskService(memory.NewTaskStore(nil), nil, nil)
		require.NoError(t, err)

		id, _, err := svc.CreateTask(context.Background(), newTask(t, "a", "b", nil))
		require.NoError(t, err)
		assert.Equal(t, 1, id)
	})
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()
	svc, emitter := newTestService(t)

	id, task, err := svc.CreateTask(ctx, newTask(t, "Task1", "Description1", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, domain.Task{Title: "Task1", Description: "Description1", Completed: true}, *task)

	got, err := svc.GetTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, *task, *got)

	assert.Equal(t, []string{events.TypeTaskCreated}, emitter.types())
	assert.Equal(t, 1, emitter.events[0].TaskID)
}

func TestTaskService_CreateTask_ValidationError(t *testing.T) {
	svc, emitter := newTestService(t)

	_, _, err := svc.CreateTask(context.Background(),
		&domain.Task{Title: strings.Repeat("t", 51), Description: "d"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, emitter.types())
}

func TestTaskService_CreateTask_StoreError(t *testing.T) {
	storeErr := errors.New("boom")
	svc, err := NewTaskService(&MockTaskStore{
		CreateFn: func(ctx context.Context, task *domain.Task) (int, error) { return 0, storeErr },
	}, nil, discardLogger())
	require.NoError(t, err)

	_, _, err = svc.CreateTask(context.Background(), newTask(t, "a", "b", nil))
	var svcErr *TaskServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_task", svcErr.Operation)
	assert.ErrorIs(t, err, storeErr)
}

func TestTaskService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, emitter := newTestService(t)

	_, err := svc.GetTask(ctx, 1)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.UpdateTask(ctx, 1, newTask(t, "a", "b", nil))
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.DeleteTask(ctx, 1)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.Empty(t, emitter.types())
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()
	svc, emitter := newTestService(t)

	id, _, err := svc.CreateTask(ctx, newTask(t, "Task3", "Description3", nil))
	require.NoError(t, err)

	f := false
	updated, err := svc.UpdateTask(ctx, id, newTask(t, "Task5", "Description5", &f))
	require.NoError(t, err)
	assert.Equal(t, domain.Task{Title: "Task5", Description: "Description5", Completed: false}, *updated)

	got, err := svc.GetTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	// Omitting completed on update resets it to the default: no merge.
	replaced, err := svc.UpdateTask(ctx, id, newTask(t, "Task6", "Description6", nil))
	require.NoError(t, err)
	assert.True(t, replaced.Completed)

	assert.Equal(t,
		[]string{events.TypeTaskCreated, events.TypeTaskUpdated, events.TypeTaskUpdated},
		emitter.types())
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	svc, emitter := newTestService(t)

	id, _, err := svc.CreateTask(ctx, newTask(t, "Task1", "Description1", nil))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, id))

	all, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Contains(t, all, id, "delete must keep the key")
	assert.False(t, all[id].Completed)
	assert.Equal(t, "Task1", all[id].Title)

	// Deleting again is allowed and leaves the task incomplete
	require.NoError(t, svc.DeleteTask(ctx, id))
	got, err := svc.GetTask(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Completed)

	assert.Equal(t,
		[]string{events.TypeTaskCreated, events.TypeTaskSoftDeleted, events.TypeTaskSoftDeleted},
		emitter.types())
}

func TestTaskService_EmitFailureDoesNotFailRequest(t *testing.T) {
	emitter := &recordingEmitter{err: errors.New("handler down")}
	svc, err := NewTaskService(memory.NewTaskStore(discardLogger()), emitter, discardLogger())
	require.NoError(t, err)

	id, _, err := svc.CreateTask(context.Background(), newTask(t, "a", "b", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Len(t, emitter.types(), 1)
}

func TestTaskService_ListTasks_StoreError(t *testing.T) {
	svc, err := NewTaskService(&MockTaskStore{
		ListFn: func(ctx context.Context) (map[int]*domain.Task, error) {
			return nil, store.NewStoreError("task", "list", "unavailable", nil)
		},
	}, nil, discardLogger())
	require.NoError(t, err)

	_, err = svc.ListTasks(context.Background())
	var svcErr *TaskServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "list_tasks", svcErr.Operation)
}

func TestTaskService_CreateUpdateDeleteScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, n := range []string{"1", "2", "3", "4"} {
		_, _, err := svc.CreateTask(ctx, newTask(t, "Task"+n, "Description"+n, nil))
		require.NoError(t, err)
	}

	f := false
	_, err := svc.UpdateTask(ctx, 3, newTask(t, "Task5", "Description5", &f))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTask(ctx, 3))

	all, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, domain.Task{Title: "Task1", Description: "Description1", Completed: true}, *all[1])
	assert.Equal(t, domain.Task{Title: "Task2", Description: "Description2", Completed: true}, *all[2])
	assert.Equal(t, domain.Task{Title: "Task5", Description: "Description5", Completed: false}, *all[3])
	assert.Equal(t, domain.Task{Title: "Task4", Description: "Description4", Completed: true}, *all[4])
}
