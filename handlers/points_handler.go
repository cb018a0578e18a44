package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"taskQuestAPI/internal/points"
	"taskQuestAPI/internal/user"
	"taskQuestAPI/services"

	"github.com/gorilla/mux"
)

type PointsHandler struct {
	pointsService *services.PointsService
	userService   *services.UserService
}

func NewPointsHandler(pointsService *services.PointsService, userService *services.UserService) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
		userService:   userService,
	}
}

func (h *PointsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	history, err := h.pointsService.GetHistory(ctx, u.ID, page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, history, "")
}

func (h *PointsHandler) GetDaySummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	summary, err := h.pointsService.GetDaySummary(ctx, u.ID, date)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, summary, "")
}

func (h *PointsHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}
	if u.Role != user.RoleParent {
		respondWithError(w, http.StatusForbidden, "Only parents manage points rules")
		return
	}

	var req points.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule, err := h.pointsService.CreateRule(ctx, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, rule, "Rule created")
}

func (h *PointsHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := requireUser(ctx, w, h.userService); !ok {
		return
	}

	rules, err := h.pointsService.ListRules(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, rules, "")
}

func (h *PointsHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}
	if u.Role != user.RoleParent {
		respondWithError(w, http.StatusForbidden, "Only parents manage points rules")
		return
	}

	var req points.UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule, err := h.pointsService.UpdateRule(ctx, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, rule, "Rule updated")
}
