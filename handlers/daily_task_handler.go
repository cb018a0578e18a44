package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"taskQuestAPI/internal/dailytask"
	"taskQuestAPI/services"

	"github.com/gorilla/mux"
)

type DailyTaskHandler struct {
	dailyTaskService *services.DailyTaskService
	userService      *services.UserService
}

func NewDailyTaskHandler(dailyTaskService *services.DailyTaskService, userService *services.UserService) *DailyTaskHandler {
	return &DailyTaskHandler{
		dailyTaskService: dailyTaskService,
		userService:      userService,
	}
}

func (h *DailyTaskHandler) CreateDailyTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	var req dailytask.CreateDailyTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dt, err := h.dailyTaskService.CreateDailyTask(ctx, u, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, dt, "Task planned")
}

func (h *DailyTaskHandler) ListDailyTasks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	q := r.URL.Query()
	tasks, err := h.dailyTaskService.ListDailyTasks(ctx, u, q.Get("userId"), q.Get("date"), dailytask.Status(q.Get("status")))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, tasks, "")
}

func (h *DailyTaskHandler) UpdateDailyTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	var req dailytask.UpdateDailyTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.dailyTaskService.UpdateDailyTask(ctx, u, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, result.DailyTask, result.AwardMessage)
}

func (h *DailyTaskHandler) DeleteDailyTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	if err := h.dailyTaskService.DeleteDailyTask(ctx, u, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, nil, "Task deleted")
}

func (h *DailyTaskHandler) GetPendingApprovals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	tasks, err := h.dailyTaskService.GetPendingApprovals(ctx, u)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, tasks, "")
}

func (h *DailyTaskHandler) DecideDailyTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	var req dailytask.ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := mux.Vars(r)["id"]
	log.Printf("DailyTaskHandler: %s decision on task %s by %s", req.Action, id, u.ID)

	result, err := h.dailyTaskService.Decide(ctx, u, id, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, result.DailyTask, result.AwardMessage)
}

func (h *DailyTaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	q := r.URL.Query()
	stats, err := h.dailyTaskService.GetStats(ctx, u, q.Get("userId"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, stats, "")
}
