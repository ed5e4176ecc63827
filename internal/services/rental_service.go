package services

import (
	"context"
	"log"
	"time"

	"khstayBack/internal/models"
	"khstayBack/internal/repositories"
)

const defaultPopularLimit = 10

// RentalService covers the listing-side operations: creation, reads,
// view tracking and the popularity feed.
type RentalService struct {
	RentalRepo *repositories.RentalRepository
	RecentRepo *repositories.RecentViewedRepository
	Popularity *PopularityService
	Cache      *repositories.PopularCache
	ErrorLog   *log.Logger
}

func (s *RentalService) Create(ctx context.Context, rental models.Rental) (models.Rental, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return models.Rental{}, models.ErrUnauthenticated
	}
	now := time.Now()
	rental.OwnerID = uid
	rental.Status = models.RentalStatusActive
	rental.CreatedAt = now
	rental.UpdatedAt = now

	id, err := s.RentalRepo.Create(ctx, rental)
	if err != nil {
		return models.Rental{}, err
	}
	rental.ID = id
	s.Cache.Invalidate(ctx)
	return rental, nil
}

func (s *RentalService) Get(ctx context.Context, id string) (models.Rental, error) {
	return s.RentalRepo.GetByID(ctx, id)
}

func (s *RentalService) ListForOwner(ctx context.Context) ([]models.Rental, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return nil, models.ErrUnauthenticated
	}
	return s.RentalRepo.ListByOwner(ctx, uid)
}

// TrackView records the open in the caller's recent history and bumps
// the view counter. Both effects are best effort; a listing view never
// fails because of them.
func (s *RentalService) TrackView(ctx context.Context, rentalID string) {
	if uid, ok := callerID(ctx); ok {
		rental, err := s.RentalRepo.GetByID(ctx, rentalID)
		if err != nil {
			s.logf("track view of rental %s: %v", rentalID, err)
		} else {
			item := models.RecentViewed{
				RentalID: rental.ID,
				Title:    rental.Title,
				ImageURL: rental.ImageURL,
				ViewedAt: time.Now(),
			}
			if err := s.RecentRepo.Record(ctx, uid, item); err != nil {
				s.logf("record recent view for %s: %v", uid, err)
			}
		}
	}
	s.Popularity.IncrementView(ctx, rentalID)
}

func (s *RentalService) RecentlyViewed(ctx context.Context) ([]models.RecentViewed, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return nil, models.ErrUnauthenticated
	}
	return s.RecentRepo.List(ctx, uid)
}

// ListPopular serves the ranked feed, preferring the short-lived Redis
// copy over a fresh store query.
func (s *RentalService) ListPopular(ctx context.Context, limit int) ([]models.Rental, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if cached, ok := s.Cache.Get(ctx); ok && len(cached) >= limit {
		return cached[:limit], nil
	}
	rentals, err := s.RentalRepo.ListPopular(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, rentals)
	return rentals, nil
}

// Archive takes the caller's listing out of circulation.
func (s *RentalService) Archive(ctx context.Context, rentalID string) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	rental, err := s.RentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return err
	}
	if rental.OwnerID != uid {
		return models.ErrPermissionDenied
	}
	if err := s.RentalRepo.SetStatus(ctx, rentalID, models.RentalStatusArchived); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}

func (s *RentalService) logf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
