package handlers

import (
	"encoding/json"
	"net/http"

	"khstayBack/internal/services"
)

type TokenHandler struct {
	Service *services.TokenService
}

func (h *TokenHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.Register(r.Context(), req.Token); err != nil {
		serviceError(w, "RegisterToken", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *TokenHandler) UnregisterToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.Unregister(r.Context(), req.Token); err != nil {
		serviceError(w, "UnregisterToken", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
