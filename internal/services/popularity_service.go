package services

import (
	"context"
	"log"

	"khstayBack/internal/repositories"
)

// Score weights for the popularity ranking. A booking is worth five
// views, a favorite three.
const (
	viewWeight     = 1.0
	favoriteWeight = 3.0
	bookingWeight  = 5.0
)

// PopularityService owns the denormalized counters and the popularity
// score on rental documents. Every method is best effort: failures are
// logged and never propagated, so a broken counter can not fail the
// user action that triggered it.
type PopularityService struct {
	RentalRepo *repositories.RentalRepository
	ErrorLog   *log.Logger
}

func (s *PopularityService) IncrementView(ctx context.Context, rentalID string) {
	s.bump(ctx, rentalID, repositories.FieldViewCount, 1)
}

func (s *PopularityService) IncrementFavorite(ctx context.Context, rentalID string) {
	s.bump(ctx, rentalID, repositories.FieldFavoriteCount, 1)
}

func (s *PopularityService) DecrementFavorite(ctx context.Context, rentalID string) {
	s.bump(ctx, rentalID, repositories.FieldFavoriteCount, -1)
}

func (s *PopularityService) IncrementBooking(ctx context.Context, rentalID string) {
	s.bump(ctx, rentalID, repositories.FieldBookingCount, 1)
}

func (s *PopularityService) bump(ctx context.Context, rentalID, field string, delta int64) {
	if err := s.RentalRepo.IncrementCounter(ctx, rentalID, field, delta); err != nil {
		if delta < 0 {
			s.logf("decrement %s on rental %s: %v", field, rentalID, err)
			return
		}
		// Older documents predate the counter fields. Seed the field at 1
		// and move on; a concurrent increment lost here is acceptable.
		if err := s.RentalRepo.OverwriteCounter(ctx, rentalID, field, 1); err != nil {
			s.logf("seed %s on rental %s: %v", field, rentalID, err)
			return
		}
	}
	s.Recalculate(ctx, rentalID)
}

// Recalculate reads the three counters back and stores the weighted
// score. The read and the write are separate steps, so two overlapping
// recalculations can race; the loser's score is corrected by the next
// counter change on the same rental.
func (s *PopularityService) Recalculate(ctx context.Context, rentalID string) {
	rental, err := s.RentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		s.logf("recalculate score for rental %s: %v", rentalID, err)
		return
	}
	score := Score(rental.ViewCount, rental.FavoriteCount, rental.BookingCount)
	if err := s.RentalRepo.SetPopularityScore(ctx, rentalID, score); err != nil {
		s.logf("store score for rental %s: %v", rentalID, err)
	}
}

// Score computes views*1 + favorites*3 + bookings*5.
func Score(views, favorites, bookings int64) float64 {
	return float64(views)*viewWeight + float64(favorites)*favoriteWeight + float64(bookings)*bookingWeight
}

func (s *PopularityService) logf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
