package handlers

import (
	"encoding/json"
	"net/http"

	"khstayBack/internal/fsm"
	"khstayBack/internal/models"
	"khstayBack/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var draft models.BookingDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.Create(r.Context(), draft)
	if err != nil {
		serviceError(w, "CreateBooking", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing booking ID", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.Get(r.Context(), id)
	if err != nil {
		serviceError(w, "GetBooking", err)
		return
	}
	json.NewEncoder(w).Encode(booking)
}

// ListMyBookings returns the caller's bookings as a guest.
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListForGuest(r.Context())
	if err != nil {
		serviceError(w, "ListMyBookings", err)
		return
	}
	json.NewEncoder(w).Encode(bookings)
}

// ListIncomingBookings returns bookings against the caller's listings.
func (h *BookingHandler) ListIncomingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListForOwner(r.Context())
	if err != nil {
		serviceError(w, "ListIncomingBookings", err)
		return
	}
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, fsm.StatusApproved)
}

func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, fsm.StatusRejected)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, fsm.StatusCancelled)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, status string) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing booking ID", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.Transition(r.Context(), id, status)
	if err != nil {
		serviceError(w, "TransitionBooking", err)
		return
	}
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing booking ID", http.StatusBadRequest)
		return
	}
	notify := r.URL.Query().Get("notify") != "false"
	if err := h.Service.Delete(r.Context(), id, notify); err != nil {
		serviceError(w, "DeleteBooking", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
