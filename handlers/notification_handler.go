package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"taskQuestAPI/services"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	userService         *services.UserService
}

func NewNotificationHandler(notificationService *services.NotificationService, userService *services.UserService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		userService:         userService,
	}
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	list, err := h.notificationService.List(ctx, u.ID, page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, list, "")
}

func (h *NotificationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := requireUser(ctx, w, h.userService)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(ctx, u.ID, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, nil, "Notification read")
}
