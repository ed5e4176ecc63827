package models

import "time"

// Notification types emitted by the booking and chat flows.
const (
	NotificationBookingRequest   = "booking_request"
	NotificationBookingApproved  = "booking_approved"
	NotificationBookingRejected  = "booking_rejected"
	NotificationBookingCancelled = "booking_cancelled"
	NotificationBookingDeleted   = "booking_deleted"
	NotificationBookingChanged   = "booking_status_changed"
	NotificationNewMessage       = "new_message"
)

// Notification is a one-way in-app record stored under the receiver's
// notifications subcollection. Write-once except the read flag.
type Notification struct {
	ID         string    `json:"id"`
	ReceiverID string    `json:"receiver_id"`
	SenderID   string    `json:"sender_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id,omitempty"`
	RentalID   string    `json:"rental_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}
