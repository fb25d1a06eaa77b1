package api

import (
	"log/slog"
	"net/http"

	"github.com/tasksapi/tasks-api/internal/api/shared"
	"github.com/tasksapi/tasks-api/internal/platform/logger"
	"github.com/tasksapi/tasks-api/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Welcome handles GET / requests.
func (h *TaskHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, WelcomeResponse{Hello: "World"})
}

// ListTasks handles GET /tasks/ requests.
// The response is an object keyed by task identifier.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	response := make(map[int]TaskResponse, len(tasks))
	for id, task := range tasks {
		response[id] = taskToResponse(task)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, idErr := getPathTaskID(r)
	if idErr != nil {
		HandleAPIError(w, r, idErr)
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /tasks/ requests.
// The assigned identifier is logged but not returned in the body.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, reqErr := decodeTaskRequest(r)
	if reqErr != nil {
		HandleAPIError(w, r, reqErr)
		return
	}

	task, err := req.ToDomain()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	id, created, err := h.taskService.CreateTask(r.Context(), task)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("task created via API", slog.Int("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(created))
}

// UpdateTask handles PUT /tasks/{id} requests.
// Path and body are validated together before the store is consulted, so an
// invalid body yields 422 even for an unknown identifier.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, idErr := getPathTaskID(r)
	req, bodyErr := decodeTaskRequest(r)
	if reqErr := mergeValidationErrors(idErr, bodyErr); reqErr != nil {
		HandleAPIError(w, r, reqErr)
		return
	}

	task, err := req.ToDomain()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated, err := h.taskService.UpdateTask(r.Context(), id, task)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(updated))
}

// DeleteTask handles DELETE /tasks/{id} requests.
// The task is marked incomplete and kept; see service.TaskService.DeleteTask.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, idErr := getPathTaskID(r)
	if idErr != nil {
		HandleAPIError(w, r, idErr)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithDetail(w, r, http.StatusOK, MessageTaskDeleted)
}
