package services

import (
	"context"
	"fmt"
	"time"

	"khstayBack/internal/models"
	"khstayBack/internal/repositories"
)

// FavoriteService keeps the per-user favorites list in sync with the
// rental's favorite counter.
type FavoriteService struct {
	FavoriteRepo *repositories.FavoriteRepository
	RentalRepo   *repositories.RentalRepository
	Popularity   *PopularityService
}

// Add favorites the rental for the caller. Favoriting an already
// favorited rental refreshes the snapshot without double counting.
func (s *FavoriteService) Add(ctx context.Context, rentalID string) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	rental, err := s.RentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return err
	}
	exists, err := s.FavoriteRepo.Exists(ctx, uid, rentalID)
	if err != nil {
		return err
	}

	fav := models.Favorite{
		PropertyID:       rental.ID,
		PropertyName:     rental.Title,
		PropertyImage:    rental.ImageURL,
		PropertyPrice:    fmt.Sprintf("%.0f", rental.Price),
		PropertyLocation: rental.Location,
		Timestamp:        time.Now(),
	}
	if err := s.FavoriteRepo.Add(ctx, uid, fav); err != nil {
		return err
	}
	if !exists {
		s.Popularity.IncrementFavorite(ctx, rentalID)
	}
	return nil
}

// Remove unfavorites the rental. Removing something never favorited is
// a no-op and leaves the counter alone.
func (s *FavoriteService) Remove(ctx context.Context, rentalID string) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	exists, err := s.FavoriteRepo.Exists(ctx, uid, rentalID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if err := s.FavoriteRepo.Remove(ctx, uid, rentalID); err != nil {
		return err
	}
	s.Popularity.DecrementFavorite(ctx, rentalID)
	return nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, rentalID string) (bool, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return false, models.ErrUnauthenticated
	}
	return s.FavoriteRepo.Exists(ctx, uid, rentalID)
}

func (s *FavoriteService) List(ctx context.Context) ([]models.Favorite, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return nil, models.ErrUnauthenticated
	}
	return s.FavoriteRepo.List(ctx, uid)
}

// Clear unfavorites everything, decrementing each rental's counter.
func (s *FavoriteService) Clear(ctx context.Context) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	favs, err := s.FavoriteRepo.List(ctx, uid)
	if err != nil {
		return err
	}
	for _, fav := range favs {
		if err := s.FavoriteRepo.Remove(ctx, uid, fav.PropertyID); err != nil {
			return err
		}
		s.Popularity.DecrementFavorite(ctx, fav.PropertyID)
	}
	return nil
}
