package handlers

import (
	"errors"
	"log"
	"net/http"

	"khstayBack/internal/models"
)

// serviceError maps the service sentinels onto HTTP status codes.
// Anything unmapped is a 500 and gets logged with the operation name.
func serviceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		http.Error(w, "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, models.ErrPermissionDenied):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrRentalNotFound),
		errors.Is(err, models.ErrConversationNotFound),
		errors.Is(err, models.ErrMessageNotFound),
		errors.Is(err, models.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrRentalIDRequired),
		errors.Is(err, models.ErrInvalidDateRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("%s error: %v", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
