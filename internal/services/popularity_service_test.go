package services

import (
	"context"
	"errors"
	"testing"

	"khstayBack/internal/repositories"
	"khstayBack/internal/store"
)

func TestScoreWeights(t *testing.T) {
	if got := Score(10, 2, 1); got != 21 {
		t.Errorf("Score(10,2,1) = %v; want 21", got)
	}
	if got := Score(0, 0, 0); got != 0 {
		t.Errorf("Score(0,0,0) = %v; want 0", got)
	}
}

func TestCounterBumpsRecalculateScore(t *testing.T) {
	env := newTestEnv()
	rentalID := env.seedRental(t, "owner", "Flat", 90000)

	ctx := context.Background()
	env.popularity.IncrementView(ctx, rentalID)
	env.popularity.IncrementView(ctx, rentalID)
	env.popularity.IncrementView(ctx, rentalID)
	env.popularity.IncrementFavorite(ctx, rentalID)

	rental := env.rental(t, rentalID)
	if rental.ViewCount != 3 {
		t.Errorf("viewCount = %d; want 3", rental.ViewCount)
	}
	if rental.FavoriteCount != 1 {
		t.Errorf("favoriteCount = %d; want 1", rental.FavoriteCount)
	}
	if rental.PopularityScore != 6 {
		t.Errorf("popularityScore = %v; want 6", rental.PopularityScore)
	}

	env.popularity.DecrementFavorite(ctx, rentalID)
	if rental := env.rental(t, rentalID); rental.PopularityScore != 3 {
		t.Errorf("after unfavorite: popularityScore = %v; want 3", rental.PopularityScore)
	}
}

// brokenIncrementStore rejects atomic increments, forcing the seed path.
type brokenIncrementStore struct {
	store.Store
}

func (s *brokenIncrementStore) Increment(ctx context.Context, collection, id, field string, delta int64) error {
	return errors.New("transform not supported")
}

func TestIncrementFallbackSeedsCounterAtOne(t *testing.T) {
	ms := store.NewMemStore()
	repo := &repositories.RentalRepository{Store: &brokenIncrementStore{Store: ms}}
	pop := &PopularityService{RentalRepo: repo}

	ctx := context.Background()
	id, err := repo.Create(ctx, seedRentalModel("owner", "Flat", 90000))
	if err != nil {
		t.Fatal(err)
	}

	pop.IncrementView(ctx, id)
	rental, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if rental.ViewCount != 1 {
		t.Errorf("viewCount = %d; want 1 from the fallback write", rental.ViewCount)
	}
	if rental.PopularityScore != 1 {
		t.Errorf("popularityScore = %v; want 1", rental.PopularityScore)
	}

	// A decrement has no fallback; the counter must not move.
	pop.DecrementFavorite(ctx, id)
	if rental, _ := repo.GetByID(ctx, id); rental.FavoriteCount != 0 {
		t.Errorf("favoriteCount = %d; want 0", rental.FavoriteCount)
	}
}

func TestCounterFailureIsSilent(t *testing.T) {
	env := newTestEnv()
	// No such rental; both the increment and the fallback fail. The call
	// must still return normally.
	env.popularity.IncrementView(context.Background(), "missing")
}
