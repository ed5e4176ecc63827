package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"khstayBack/internal/services"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	ns, err := h.Service.List(r.Context(), limit)
	if err != nil {
		serviceError(w, "ListNotifications", err)
		return
	}
	json.NewEncoder(w).Encode(ns)
}

func (h *NotificationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing notification ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.MarkRead(r.Context(), id); err != nil {
		serviceError(w, "MarkNotificationRead", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *NotificationHandler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.MarkAllRead(r.Context()); err != nil {
		serviceError(w, "MarkAllNotificationsRead", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
