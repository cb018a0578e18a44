package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"taskQuestAPI/internal/redemption"
	"taskQuestAPI/services"

	"github.com/gorilla/mux"
)

type RedemptionHandler struct {
	redemptionService *services.RedemptionService
	userService       *services.UserService
}

func NewRedemptionHandler(redemptionService *services.RedemptionService, userService *services.UserService) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService: redemptionService,
		userService:       userService,
	}
}

func (h *RedemptionHandler) CreateRedemption(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	var req redemption.CreateRedemptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	red, err := h.redemptionService.CreateRedemption(ctx, u, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, red, "Redemption requested")
}

func (h *RedemptionHandler) ListRedemptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	redemptions, err := h.redemptionService.ListRedemptions(ctx, u)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, redemptions, "")
}

func (h *RedemptionHandler) ProcessRedemption(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	var req redemption.ProcessRedemptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	red, err := h.redemptionService.ProcessRedemption(ctx, u, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, red, "Redemption processed")
}
