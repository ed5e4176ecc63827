package repositories

import (
	"context"
	"errors"
	"time"

	"khstayBack/internal/models"
	"khstayBack/internal/store"
)

// Denormalized counter fields on rental documents.
const (
	FieldViewCount     = "viewCount"
	FieldFavoriteCount = "favoriteCount"
	FieldBookingCount  = "bookingCount"
)

type RentalRepository struct {
	Store store.Store
}

func (r *RentalRepository) Create(ctx context.Context, rental models.Rental) (string, error) {
	doc := map[string]interface{}{
		"ownerId":         rental.OwnerID,
		"title":           rental.Title,
		"location":        rental.Location,
		"price":           rental.Price,
		"imageUrl":        rental.ImageURL,
		"status":          rental.Status,
		"viewCount":       int64(0),
		"favoriteCount":   int64(0),
		"bookingCount":    int64(0),
		"popularityScore": float64(0),
		"createdAt":       rental.CreatedAt,
		"updatedAt":       rental.UpdatedAt,
	}
	return r.Store.Add(ctx, colRentals, doc)
}

func (r *RentalRepository) GetByID(ctx context.Context, id string) (models.Rental, error) {
	data, err := r.Store.Get(ctx, colRentals, id)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return models.Rental{}, models.ErrRentalNotFound
		}
		return models.Rental{}, err
	}
	return rentalFromDoc(id, data), nil
}

// SetStatus flips the listing between active, pending and archived.
// The counter engine never touches the listing status.
func (r *RentalRepository) SetStatus(ctx context.Context, id, status string) error {
	err := r.Store.Update(ctx, colRentals, id, map[string]interface{}{
		"status":    status,
		"updatedAt": time.Now(),
	})
	if errors.Is(err, store.ErrDocNotFound) {
		return models.ErrRentalNotFound
	}
	return err
}

// IncrementCounter atomically adds delta to one of the counter fields.
func (r *RentalRepository) IncrementCounter(ctx context.Context, id, field string, delta int64) error {
	err := r.Store.Increment(ctx, colRentals, id, field, delta)
	if errors.Is(err, store.ErrDocNotFound) {
		return models.ErrRentalNotFound
	}
	return err
}

// OverwriteCounter unconditionally sets a counter field. Used as the
// fallback when the atomic increment is rejected by the backend.
func (r *RentalRepository) OverwriteCounter(ctx context.Context, id, field string, value int64) error {
	err := r.Store.Update(ctx, colRentals, id, map[string]interface{}{field: value})
	if errors.Is(err, store.ErrDocNotFound) {
		return models.ErrRentalNotFound
	}
	return err
}

func (r *RentalRepository) SetPopularityScore(ctx context.Context, id string, score float64) error {
	err := r.Store.Update(ctx, colRentals, id, map[string]interface{}{"popularityScore": score})
	if errors.Is(err, store.ErrDocNotFound) {
		return models.ErrRentalNotFound
	}
	return err
}

func (r *RentalRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Rental, error) {
	docs, err := r.Store.Query(ctx, colRentals, store.Query{
		Filters: []store.Filter{{Field: "ownerId", Op: "==", Value: ownerID}},
		OrderBy: []store.Order{{Field: "createdAt", Desc: true}},
	})
	if err != nil {
		return nil, err
	}
	return rentalsFromDocs(docs), nil
}

// ListPopular returns active listings ranked by popularity score.
func (r *RentalRepository) ListPopular(ctx context.Context, limit int) ([]models.Rental, error) {
	docs, err := r.Store.Query(ctx, colRentals, store.Query{
		Filters: []store.Filter{{Field: "status", Op: "==", Value: models.RentalStatusActive}},
		OrderBy: []store.Order{{Field: "popularityScore", Desc: true}},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	return rentalsFromDocs(docs), nil
}

func rentalsFromDocs(docs []store.Doc) []models.Rental {
	rentals := make([]models.Rental, 0, len(docs))
	for _, doc := range docs {
		rentals = append(rentals, rentalFromDoc(doc.ID, doc.Data))
	}
	return rentals
}

func rentalFromDoc(id string, data map[string]interface{}) models.Rental {
	return models.Rental{
		ID:              id,
		OwnerID:         store.Str(data, "ownerId"),
		Title:           store.Str(data, "title"),
		Location:        store.Str(data, "location"),
		Price:           store.Float(data, "price"),
		ImageURL:        store.Str(data, "imageUrl"),
		Status:          store.Str(data, "status"),
		ViewCount:       store.Int(data, "viewCount"),
		FavoriteCount:   store.Int(data, "favoriteCount"),
		BookingCount:    store.Int(data, "bookingCount"),
		PopularityScore: store.Float(data, "popularityScore"),
		CreatedAt:       store.Time(data, "createdAt"),
		UpdatedAt:       store.Time(data, "updatedAt"),
	}
}
