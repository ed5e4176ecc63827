package models

import "errors"

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrRentalNotFound       = errors.New("rental not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrUserNotFound         = errors.New("user not found")

	ErrUnauthenticated  = errors.New("user not authenticated")
	ErrPermissionDenied = errors.New("permission denied")

	ErrRentalIDRequired  = errors.New("rentalId is required")
	ErrInvalidDateRange  = errors.New("check-out date must be after check-in date")
	ErrInvalidTransition = errors.New("invalid booking status transition")

	ErrBackendUnavailable = errors.New("backend unavailable")
)
