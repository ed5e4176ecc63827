package services

import (
	"context"
	"log"
	"sync"
	"time"

	"khstayBack/internal/models"
	"khstayBack/internal/push"
	"khstayBack/internal/repositories"
	"khstayBack/internal/store"
)

// NotificationService fans a notification out to the receiver's in-app
// feed and their device. Both legs are best effort and independent: a
// push failure never blocks the in-app record and vice versa.
type NotificationService struct {
	NotificationRepo *repositories.NotificationRepository
	TokenRepo        *repositories.TokenRepository
	Push             push.Sender
	ErrorLog         *log.Logger
}

// Notify delivers both legs concurrently and returns once both settled.
func (s *NotificationService) Notify(ctx context.Context, n models.Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := s.NotificationRepo.Add(ctx, n); err != nil {
			s.logf("store notification for %s: %v", n.ReceiverID, err)
		}
	}()
	go func() {
		defer wg.Done()
		s.sendPush(ctx, n)
	}()
	wg.Wait()
}

func (s *NotificationService) sendPush(ctx context.Context, n models.Notification) {
	if s.Push == nil {
		return
	}
	token, err := s.TokenRepo.TokenForUser(ctx, n.ReceiverID)
	if err != nil {
		s.logf("resolve device token for %s: %v", n.ReceiverID, err)
		return
	}
	if token == "" {
		// No registered device; the in-app record is enough.
		return
	}
	owner, err := s.TokenRepo.OwnerOf(ctx, token)
	if err != nil {
		s.logf("resolve token owner for %s: %v", n.ReceiverID, err)
		return
	}
	if owner != "" && owner != n.ReceiverID {
		// Stale registry entry; the token was re-registered by another
		// account. Refuse rather than push to the wrong device.
		s.logf("token for %s is owned by %s, skipping push", n.ReceiverID, owner)
		return
	}

	data := map[string]string{}
	if n.BookingID != "" {
		data["bookingId"] = n.BookingID
	}
	if n.RentalID != "" {
		data["rentalId"] = n.RentalID
	}
	if err := s.Push.Send(ctx, token, n.ReceiverID, n.Title, n.Message, n.Type, data); err != nil {
		s.logf("push to %s: %v", n.ReceiverID, err)
	}
}

func (s *NotificationService) List(ctx context.Context, limit int) ([]models.Notification, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return nil, models.ErrUnauthenticated
	}
	return s.NotificationRepo.ListForUser(ctx, uid, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	return s.NotificationRepo.MarkRead(ctx, uid, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	return s.NotificationRepo.MarkAllRead(ctx, uid)
}

// Subscribe streams the caller's notification changes for the websocket.
func (s *NotificationService) Subscribe(ctx context.Context) (<-chan store.Event, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return nil, models.ErrUnauthenticated
	}
	return s.NotificationRepo.SubscribeForUser(ctx, uid)
}

func (s *NotificationService) logf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
