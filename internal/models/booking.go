package models

import "time"

// Booking is one reservation request against a rental. rentalId, ownerId and
// userId never change after creation; status changes only through the booking
// service.
type Booking struct {
	ID           string     `json:"id"`
	RentalID     string     `json:"rental_id"`
	RentalTitle  string     `json:"rental_title"`
	RentalPrice  float64    `json:"rental_price"`
	OwnerID      string     `json:"owner_id"`
	UserID       string     `json:"user_id"`
	GuestName    string     `json:"guest_name"`
	GuestPhone   string     `json:"guest_phone"`
	GuestEmail   string     `json:"guest_email"`
	Notes        string     `json:"notes,omitempty"`
	CheckInDate  time.Time  `json:"check_in_date"`
	CheckOutDate time.Time  `json:"check_out_date"`
	NumberOfDays int        `json:"number_of_days"`
	TotalPrice   float64    `json:"total_price"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

// BookingDraft carries the guest-supplied part of a new booking. Owner and
// guest ids are resolved server side and never trusted from the client.
type BookingDraft struct {
	RentalID     string    `json:"rental_id"`
	GuestName    string    `json:"guest_name"`
	GuestPhone   string    `json:"guest_phone"`
	GuestEmail   string    `json:"guest_email"`
	Notes        string    `json:"notes"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
}

// NightlyRate converts the rental's monthly price to a per-night rate.
func NightlyRate(monthlyPrice float64) float64 {
	return monthlyPrice / 30.0
}

// StayDays returns the number of whole days between check-in and check-out.
func StayDays(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}
