package handlers

import (
	"encoding/json"
	"net/http"

	"khstayBack/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
}

func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing rental ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Add(r.Context(), id); err != nil {
		serviceError(w, "AddFavorite", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing rental ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Remove(r.Context(), id); err != nil {
		serviceError(w, "RemoveFavorite", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.Service.List(r.Context())
	if err != nil {
		serviceError(w, "ListFavorites", err)
		return
	}
	json.NewEncoder(w).Encode(favs)
}

func (h *FavoriteHandler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Clear(r.Context()); err != nil {
		serviceError(w, "ClearFavorites", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *FavoriteHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing rental ID", http.StatusBadRequest)
		return
	}
	fav, err := h.Service.IsFavorite(r.Context(), id)
	if err != nil {
		serviceError(w, "IsFavorite", err)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"favorite": fav})
}
