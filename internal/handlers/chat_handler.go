package handlers

import (
	"encoding/json"
	"net/http"

	"khstayBack/internal/services"
)

type ChatHandler struct {
	Service *services.ChatService
}

func (h *ChatHandler) GetOrCreateConversation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		RentalID string `json:"rental_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	conv, err := h.Service.GetOrCreateConversation(r.Context(), req.UserID, req.RentalID)
	if err != nil {
		serviceError(w, "GetOrCreateConversation", err)
		return
	}
	json.NewEncoder(w).Encode(conv)
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.Service.ListConversations(r.Context())
	if err != nil {
		serviceError(w, "ListConversations", err)
		return
	}
	json.NewEncoder(w).Encode(convs)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing conversation ID", http.StatusBadRequest)
		return
	}
	msgs, err := h.Service.ListMessages(r.Context(), id)
	if err != nil {
		serviceError(w, "ListMessages", err)
		return
	}
	json.NewEncoder(w).Encode(msgs)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	msg, err := h.Service.SendMessage(r.Context(), id, req.Message)
	if err != nil {
		serviceError(w, "SendMessage", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

func (h *ChatHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	convID := r.URL.Query().Get(":id")
	msgID := r.URL.Query().Get(":message_id")
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.EditMessage(r.Context(), convID, msgID, req.Message); err != nil {
		serviceError(w, "EditMessage", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	convID := r.URL.Query().Get(":id")
	msgID := r.URL.Query().Get(":message_id")
	if err := h.Service.DeleteMessage(r.Context(), convID, msgID); err != nil {
		serviceError(w, "DeleteMessage", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ChatHandler) MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if err := h.Service.MarkRead(r.Context(), id); err != nil {
		serviceError(w, "MarkConversationRead", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if err := h.Service.DeleteConversationForUser(r.Context(), id); err != nil {
		serviceError(w, "DeleteConversation", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ChatHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	total, err := h.Service.TotalUnread(r.Context())
	if err != nil {
		serviceError(w, "UnreadCount", err)
		return
	}
	json.NewEncoder(w).Encode(map[string]int64{"unread": total})
}
