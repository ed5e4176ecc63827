package models

import "time"

// Rental listing statuses. "pending" means booked and waiting for the stay,
// not awaiting moderation.
const (
	RentalStatusActive   = "active"
	RentalStatusPending  = "pending"
	RentalStatusArchived = "archived"
)

// Rental is a rentable property. The counters are denormalized onto the
// document and popularityScore is derived from them after every counter
// mutation.
type Rental struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Title           string    `json:"title"`
	Location        string    `json:"location,omitempty"`
	Price           float64   `json:"price"`
	ImageURL        string    `json:"image_url,omitempty"`
	Status          string    `json:"status"`
	ViewCount       int64     `json:"view_count"`
	FavoriteCount   int64     `json:"favorite_count"`
	BookingCount    int64     `json:"booking_count"`
	PopularityScore float64   `json:"popularity_score"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
