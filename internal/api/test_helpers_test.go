package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/tasksapi/tasks-api/internal/domain"
	"github.com/tasksapi/tasks-api/internal/platform/memory"
	"github.com/tasksapi/tasks-api/internal/service"
)

// MockTaskService is a mock implementation of service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn func(ctx context.Context, task *domain.Task) (int, *domain.Task, error)
	GetTaskFn    func(ctx context.Context, id int) (*domain.Task, error)
	ListTasksFn  func(ctx context.Context) (map[int]*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id int, task *domain.Task) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id int) error
}

func (m *MockTaskService) CreateTask(ctx context.Context, task *domain.Task) (int, *domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, task)
	}
	return 1, task, nil
}

func (m *MockTaskService) GetTask(ctx context.Context, id int) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, service.ErrTaskNotFound
}

func (m *MockTaskService) ListTasks(ctx context.Context) (map[int]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return map[int]*domain.Task{}, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id int, task *domain.Task) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, task)
	}
	return task, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id int) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter mounts the handler on the same routes the server uses.
func newTestRouter(svc service.TaskService) http.Handler {
	h := NewTaskHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Get("/", h.Welcome)
	r.Get("/tasks/", h.ListTasks)
	r.Post("/tasks/", h.CreateTask)
	r.Get("/tasks/{id}", h.GetTask)
	r.Put("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)
	return r
}

// newMemoryRouter wires the handler to a fresh in-memory store.
func newMemoryRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, err := service.NewTaskService(memory.NewTaskStore(discardLogger()), nil, discardLogger())
	require.NoError(t, err)
	return newTestRouter(svc)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeValidationResponse(t *testing.T, rec *httptest.ResponseRecorder) ValidationErrorResponse {
	t.Helper()
	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
