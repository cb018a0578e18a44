package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"taskQuestAPI/internal/task"
	"taskQuestAPI/internal/user"
	"taskQuestAPI/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	taskService *services.TaskService
	userService *services.UserService
}

func NewTaskHandler(taskService *services.TaskService, userService *services.UserService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		userService: userService,
	}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}
	if u.Role != user.RoleParent {
		respondWithError(w, http.StatusForbidden, "Only parents manage the task catalog")
		return
	}

	var req task.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.taskService.CreateTask(ctx, u.ID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, t, "Task created")
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	// Students only see active entries; parents can ask for everything.
	includeInactive := u.Role == user.RoleParent && r.URL.Query().Get("includeInactive") == "true"

	tasks, err := h.taskService.ListTasks(ctx, includeInactive)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, tasks, "")
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := requireUser(ctx, w, h.userService); !ok {
		return
	}

	t, err := h.taskService.GetTask(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, t, "")
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}
	if u.Role != user.RoleParent {
		respondWithError(w, http.StatusForbidden, "Only parents manage the task catalog")
		return
	}

	var req task.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.taskService.UpdateTask(ctx, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, t, "Task updated")
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}
	if u.Role != user.RoleParent {
		respondWithError(w, http.StatusForbidden, "Only parents manage the task catalog")
		return
	}

	if err := h.taskService.DeleteTask(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, nil, "Task deactivated")
}
