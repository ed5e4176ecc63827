package repositories

import (
	"context"
	"errors"

	"khstayBack/internal/models"
	"khstayBack/internal/store"
)

type NotificationRepository struct {
	Store store.Store
}

func (r *NotificationRepository) Add(ctx context.Context, n models.Notification) (string, error) {
	doc := map[string]interface{}{
		"receiverId": n.ReceiverID,
		"senderId":   n.SenderID,
		"title":      n.Title,
		"message":    n.Message,
		"type":       n.Type,
		"timestamp":  n.Timestamp,
		"read":       false,
	}
	if n.BookingID != "" {
		doc["bookingId"] = n.BookingID
	}
	if n.RentalID != "" {
		doc["rentalId"] = n.RentalID
	}
	return r.Store.Add(ctx, notificationsCol(n.ReceiverID), doc)
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	docs, err := r.Store.Query(ctx, notificationsCol(userID), store.Query{
		OrderBy: []store.Order{{Field: "timestamp", Desc: true}},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(docs))
	for _, doc := range docs {
		out = append(out, notificationFromDoc(doc.ID, doc.Data))
	}
	return out, nil
}

// MarkRead flips the read flag. Notifications live under the receiver's own
// subcollection, so addressing them by userID is the permission check.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	err := r.Store.Update(ctx, notificationsCol(userID), notificationID, map[string]interface{}{"read": true})
	if errors.Is(err, store.ErrDocNotFound) {
		return models.ErrPermissionDenied
	}
	return err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	docs, err := r.Store.Query(ctx, notificationsCol(userID), store.Query{
		Filters: []store.Filter{{Field: "read", Op: "==", Value: false}},
	})
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := r.Store.Update(ctx, notificationsCol(userID), doc.ID, map[string]interface{}{"read": true}); err != nil {
			return err
		}
	}
	return nil
}

// SubscribeForUser streams the user's notification changes for live UI
// binding over the websocket.
func (r *NotificationRepository) SubscribeForUser(ctx context.Context, userID string) (<-chan store.Event, error) {
	return r.Store.Subscribe(ctx, notificationsCol(userID), store.Query{})
}

func notificationFromDoc(id string, data map[string]interface{}) models.Notification {
	return models.Notification{
		ID:         id,
		ReceiverID: store.Str(data, "receiverId"),
		SenderID:   store.Str(data, "senderId"),
		Title:      store.Str(data, "title"),
		Message:    store.Str(data, "message"),
		Type:       store.Str(data, "type"),
		BookingID:  store.Str(data, "bookingId"),
		RentalID:   store.Str(data, "rentalId"),
		Timestamp:  store.Time(data, "timestamp"),
		Read:       store.Bool(data, "read"),
	}
}
