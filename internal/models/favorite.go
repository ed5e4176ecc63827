package models

import "time"

// Favorite lives under users/{uid}/favorites/{rentalId}. The stored field is
// still called propertyId for compatibility with existing documents.
type Favorite struct {
	PropertyID       string    `json:"property_id"`
	PropertyName     string    `json:"property_name"`
	PropertyImage    string    `json:"property_image,omitempty"`
	PropertyPrice    string    `json:"property_price,omitempty"`
	PropertyLocation string    `json:"property_location,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// RecentViewed records one rental the user opened. Older documents carry the
// rental id under the legacy propertyId field, or only as the document id.
type RecentViewed struct {
	ID         string    `json:"id"`
	RentalID   string    `json:"rental_id,omitempty"`
	PropertyID string    `json:"property_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	ViewedAt   time.Time `json:"viewed_at"`
}

// RentalRef resolves the referenced rental id across old and new data shapes.
func (r RecentViewed) RentalRef() string {
	if r.RentalID != "" {
		return r.RentalID
	}
	if r.PropertyID != "" {
		return r.PropertyID
	}
	return r.ID
}
