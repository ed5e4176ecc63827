package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"khstayBack/internal/models"
	"khstayBack/internal/services"
	"khstayBack/utils"
)

type RentalHandler struct {
	Service *services.RentalService
}

func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var rental models.Rental
	if err := json.NewDecoder(r.Body).Decode(&rental); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	rental, err := h.Service.Create(r.Context(), rental)
	if err != nil {
		serviceError(w, "CreateRental", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rental)
}

// GetRental serves one listing and tracks the open as a view.
func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing rental ID", http.StatusBadRequest)
		return
	}
	rental, err := h.Service.Get(r.Context(), id)
	if err != nil {
		serviceError(w, "GetRental", err)
		return
	}
	h.Service.TrackView(r.Context(), id)
	json.NewEncoder(w).Encode(rental)
}

func (h *RentalHandler) ListMyRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.Service.ListForOwner(r.Context())
	if err != nil {
		serviceError(w, "ListMyRentals", err)
		return
	}
	json.NewEncoder(w).Encode(rentals)
}

func (h *RentalHandler) ListPopular(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rentals, err := h.Service.ListPopular(r.Context(), limit)
	if err != nil {
		serviceError(w, "ListPopular", err)
		return
	}
	json.NewEncoder(w).Encode(rentals)
}

func (h *RentalHandler) RecentlyViewed(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.RecentlyViewed(r.Context())
	if err != nil {
		serviceError(w, "RecentlyViewed", err)
		return
	}
	json.NewEncoder(w).Encode(items)
}

func (h *RentalHandler) ArchiveRental(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing rental ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Archive(r.Context(), id); err != nil {
		serviceError(w, "ArchiveRental", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// UploadPhoto stores a listing photo in S3 and returns its URL.
func (h *RentalHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "Missing photo file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := utils.UploadFileToS3(file, header, "rentals")
	if err != nil {
		serviceError(w, "UploadPhoto", err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
