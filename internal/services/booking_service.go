package services

import (
	"context"
	"log"
	"time"

	"khstayBack/internal/fsm"
	"khstayBack/internal/models"
	"khstayBack/internal/repositories"
)

// BookingService drives the booking lifecycle. The status write is the
// only step that can fail a request; the follow-up effects (counters,
// listing status, notifications) run after it commits and are logged
// on failure instead of surfaced.
type BookingService struct {
	BookingRepo *repositories.BookingRepository
	RentalRepo  *repositories.RentalRepository
	Popularity  *PopularityService
	Notifier    *NotificationService
	ErrorLog    *log.Logger
}

// Create validates the draft, snapshots the rental's title and price
// into the booking and stores it as pending, then notifies the owner.
func (s *BookingService) Create(ctx context.Context, draft models.BookingDraft) (models.Booking, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return models.Booking{}, models.ErrUnauthenticated
	}
	if draft.RentalID == "" {
		return models.Booking{}, models.ErrRentalIDRequired
	}
	if !draft.CheckOutDate.After(draft.CheckInDate) {
		return models.Booking{}, models.ErrInvalidDateRange
	}
	days := models.StayDays(draft.CheckInDate, draft.CheckOutDate)
	if days < 1 {
		return models.Booking{}, models.ErrInvalidDateRange
	}

	rental, err := s.RentalRepo.GetByID(ctx, draft.RentalID)
	if err != nil {
		return models.Booking{}, err
	}

	now := time.Now()
	booking := models.Booking{
		RentalID:     rental.ID,
		RentalTitle:  rental.Title,
		RentalPrice:  rental.Price,
		OwnerID:      rental.OwnerID,
		UserID:       uid,
		GuestName:    draft.GuestName,
		GuestPhone:   draft.GuestPhone,
		GuestEmail:   draft.GuestEmail,
		Notes:        draft.Notes,
		CheckInDate:  draft.CheckInDate,
		CheckOutDate: draft.CheckOutDate,
		NumberOfDays: days,
		TotalPrice:   models.NightlyRate(rental.Price) * float64(days),
		Status:       fsm.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.BookingRepo.Create(ctx, booking)
	if err != nil {
		return models.Booking{}, err
	}
	booking.ID = id

	s.Notifier.Notify(ctx, models.Notification{
		ReceiverID: rental.OwnerID,
		SenderID:   uid,
		Title:      "New Booking Request",
		Message:    draft.GuestName + " wants to book your property: " + rental.Title,
		Type:       models.NotificationBookingRequest,
		BookingID:  id,
		RentalID:   rental.ID,
	})

	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, bookingID string) (models.Booking, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return models.Booking{}, models.ErrUnauthenticated
	}
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if uid != booking.UserID && uid != booking.OwnerID {
		return models.Booking{}, models.ErrPermissionDenied
	}
	return booking, nil
}

func (s *BookingService) ListForGuest(ctx context.Context) ([]models.Booking, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return nil, models.ErrUnauthenticated
	}
	return s.BookingRepo.ListByGuest(ctx, uid)
}

func (s *BookingService) ListForOwner(ctx context.Context) ([]models.Booking, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return nil, models.ErrUnauthenticated
	}
	return s.BookingRepo.ListByOwner(ctx, uid)
}

// Transition moves the booking to newStatus. The write is a
// compare-and-set against the status the caller observed, so two
// concurrent approvals commit exactly once; the loser re-reads and,
// if the booking already carries newStatus, reports success without
// repeating the side effects.
func (s *BookingService) Transition(ctx context.Context, bookingID, newStatus string) (models.Booking, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return models.Booking{}, models.ErrUnauthenticated
	}
	if !fsm.IsKnown(newStatus) {
		return models.Booking{}, models.ErrInvalidTransition
	}

	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	switch newStatus {
	case fsm.StatusApproved, fsm.StatusRejected:
		if uid != booking.OwnerID {
			return models.Booking{}, models.ErrPermissionDenied
		}
	case fsm.StatusCancelled:
		if uid != booking.UserID && uid != booking.OwnerID {
			return models.Booking{}, models.ErrPermissionDenied
		}
	default:
		// pending is the initial state only, never a transition target.
		return models.Booking{}, models.ErrInvalidTransition
	}

	if booking.Status == newStatus {
		// Retried request; already done.
		return booking, nil
	}
	if !fsm.CanTransition(booking.Status, newStatus) {
		return models.Booking{}, models.ErrInvalidTransition
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":    newStatus,
		"updatedAt": now,
	}
	if newStatus == fsm.StatusCancelled {
		fields["cancelledAt"] = now
	}

	applied, err := s.BookingRepo.UpdateStatusIf(ctx, bookingID, booking.Status, fields)
	if err != nil {
		return models.Booking{}, err
	}
	if !applied {
		current, err := s.BookingRepo.GetByID(ctx, bookingID)
		if err == nil && current.Status == newStatus {
			return current, nil
		}
		return models.Booking{}, models.ErrInvalidTransition
	}

	prev := booking.Status
	booking.Status = newStatus
	booking.UpdatedAt = now
	if newStatus == fsm.StatusCancelled {
		booking.CancelledAt = &now
	}

	s.applySideEffects(ctx, booking, prev, uid)
	return booking, nil
}

// applySideEffects runs after the status write committed. Each step is
// issued after the previous one returns; none of them can undo the
// transition.
func (s *BookingService) applySideEffects(ctx context.Context, booking models.Booking, prev, actor string) {
	switch booking.Status {
	case fsm.StatusApproved:
		// The CAS above guarantees this runs once per pending->approved
		// edge, so the booking counter can not double count.
		s.Popularity.IncrementBooking(ctx, booking.RentalID)
		if err := s.RentalRepo.SetStatus(ctx, booking.RentalID, models.RentalStatusPending); err != nil {
			s.logf("mark rental %s pending after approval: %v", booking.RentalID, err)
		}
	case fsm.StatusCancelled:
		if prev == fsm.StatusApproved {
			if err := s.RentalRepo.SetStatus(ctx, booking.RentalID, models.RentalStatusActive); err != nil {
				s.logf("reactivate rental %s after cancellation: %v", booking.RentalID, err)
			}
		}
	}

	s.Notifier.Notify(ctx, s.transitionNotification(booking, actor))
}

// transitionNotification addresses the counterpart of whoever acted.
func (s *BookingService) transitionNotification(booking models.Booking, actor string) models.Notification {
	receiver := booking.UserID
	if actor == booking.UserID {
		receiver = booking.OwnerID
	}

	n := models.Notification{
		ReceiverID: receiver,
		SenderID:   actor,
		BookingID:  booking.ID,
		RentalID:   booking.RentalID,
	}

	switch booking.Status {
	case fsm.StatusApproved:
		n.Title = "Booking Approved! 🎉"
		n.Message = "Your booking for " + booking.RentalTitle + " has been approved!"
		n.Type = models.NotificationBookingApproved
	case fsm.StatusRejected:
		n.Title = "Booking Update"
		n.Message = "Your booking for " + booking.RentalTitle + " was not approved."
		n.Type = models.NotificationBookingRejected
	case fsm.StatusCancelled:
		n.Title = "Booking Cancelled"
		n.Type = models.NotificationBookingCancelled
		if receiver == booking.OwnerID {
			n.Message = booking.GuestName + " cancelled their booking for " + booking.RentalTitle
		} else {
			n.Message = "Your booking for " + booking.RentalTitle + " has been cancelled."
		}
	default:
		n.Title = "Booking Update"
		n.Message = "Your booking for " + booking.RentalTitle + " changed status to " + booking.Status + "."
		n.Type = models.NotificationBookingChanged
	}
	return n
}

// Delete removes the booking from any state. An approved booking frees
// the listing back to active on the way out. notify controls whether
// the other party is told; silent deletes are used for cleanup.
func (s *BookingService) Delete(ctx context.Context, bookingID string, notify bool) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if uid != booking.UserID && uid != booking.OwnerID {
		return models.ErrPermissionDenied
	}

	if err := s.BookingRepo.Delete(ctx, bookingID); err != nil {
		return err
	}

	if booking.Status == fsm.StatusApproved {
		if err := s.RentalRepo.SetStatus(ctx, booking.RentalID, models.RentalStatusActive); err != nil {
			s.logf("reactivate rental %s after booking delete: %v", booking.RentalID, err)
		}
	}

	if !notify {
		return nil
	}
	receiver := booking.UserID
	message := "A booking request for " + booking.RentalTitle + " has been removed."
	if uid == booking.UserID {
		receiver = booking.OwnerID
		message = booking.GuestName + " removed their booking request for " + booking.RentalTitle + "."
	}
	s.Notifier.Notify(ctx, models.Notification{
		ReceiverID: receiver,
		SenderID:   uid,
		Title:      "Booking Removed",
		Message:    message,
		Type:       models.NotificationBookingDeleted,
		BookingID:  bookingID,
		RentalID:   booking.RentalID,
	})
	return nil
}

func (s *BookingService) logf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
