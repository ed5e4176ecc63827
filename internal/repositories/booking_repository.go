package repositories

import (
	"context"
	"errors"

	"khstayBack/internal/models"
	"khstayBack/internal/store"
)

type BookingRepository struct {
	Store store.Store
}

func (r *BookingRepository) Create(ctx context.Context, b models.Booking) (string, error) {
	doc := map[string]interface{}{
		"rentalId":     b.RentalID,
		"rentalTitle":  b.RentalTitle,
		"rentalPrice":  b.RentalPrice,
		"ownerId":      b.OwnerID,
		"userId":       b.UserID,
		"guestName":    b.GuestName,
		"guestPhone":   b.GuestPhone,
		"guestEmail":   b.GuestEmail,
		"notes":        b.Notes,
		"checkInDate":  b.CheckInDate,
		"checkOutDate": b.CheckOutDate,
		"numberOfDays": int64(b.NumberOfDays),
		"totalPrice":   b.TotalPrice,
		"status":       b.Status,
		"createdAt":    b.CreatedAt,
		"updatedAt":    b.UpdatedAt,
	}
	return r.Store.Add(ctx, colBookings, doc)
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (models.Booking, error) {
	data, err := r.Store.Get(ctx, colBookings, id)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return models.Booking{}, models.ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return bookingFromDoc(id, data), nil
}

// UpdateStatusIf moves the booking status from expect to the values in
// fields in one atomic step. It reports false when the stored status no
// longer equals expect.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id, expect string, fields map[string]interface{}) (bool, error) {
	applied, err := r.Store.UpdateIf(ctx, colBookings, id, "status", expect, fields)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return false, models.ErrBookingNotFound
		}
		return false, err
	}
	return applied, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(ctx, colBookings, id)
}

func (r *BookingRepository) ListByGuest(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.list(ctx, "userId", userID)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Booking, error) {
	return r.list(ctx, "ownerId", ownerID)
}

func (r *BookingRepository) ListByRental(ctx context.Context, rentalID string) ([]models.Booking, error) {
	return r.list(ctx, "rentalId", rentalID)
}

func (r *BookingRepository) list(ctx context.Context, field, value string) ([]models.Booking, error) {
	docs, err := r.Store.Query(ctx, colBookings, store.Query{
		Filters: []store.Filter{{Field: field, Op: "==", Value: value}},
		OrderBy: []store.Order{{Field: "createdAt", Desc: true}},
	})
	if err != nil {
		return nil, err
	}
	bookings := make([]models.Booking, 0, len(docs))
	for _, doc := range docs {
		bookings = append(bookings, bookingFromDoc(doc.ID, doc.Data))
	}
	return bookings, nil
}

func bookingFromDoc(id string, data map[string]interface{}) models.Booking {
	b := models.Booking{
		ID:           id,
		RentalID:     store.Str(data, "rentalId"),
		RentalTitle:  store.Str(data, "rentalTitle"),
		RentalPrice:  store.Float(data, "rentalPrice"),
		OwnerID:      store.Str(data, "ownerId"),
		UserID:       store.Str(data, "userId"),
		GuestName:    store.Str(data, "guestName"),
		GuestPhone:   store.Str(data, "guestPhone"),
		GuestEmail:   store.Str(data, "guestEmail"),
		Notes:        store.Str(data, "notes"),
		CheckInDate:  store.Time(data, "checkInDate"),
		CheckOutDate: store.Time(data, "checkOutDate"),
		NumberOfDays: int(store.Int(data, "numberOfDays")),
		TotalPrice:   store.Float(data, "totalPrice"),
		Status:       store.Str(data, "status"),
		CreatedAt:    store.Time(data, "createdAt"),
		UpdatedAt:    store.Time(data, "updatedAt"),
	}
	if t := store.Time(data, "cancelledAt"); !t.IsZero() {
		b.CancelledAt = &t
	}
	return b
}
