package services

import (
	"context"
	"errors"
	"testing"

	"khstayBack/internal/models"
)

func TestTrackViewCountsAndRecordsHistory(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "guest")
	rentalID := env.seedRental(t, "owner", "Flat", 90000)

	env.rentals.TrackView(as("guest"), rentalID)
	env.rentals.TrackView(as("guest"), rentalID)

	rental := env.rental(t, rentalID)
	if rental.ViewCount != 2 {
		t.Errorf("viewCount = %d; want 2", rental.ViewCount)
	}
	if rental.PopularityScore != 2 {
		t.Errorf("popularityScore = %v; want 2", rental.PopularityScore)
	}

	recent, err := env.rentals.RecentlyViewed(as("guest"))
	if err != nil {
		t.Fatal(err)
	}
	// Opening the same listing twice keeps one history entry.
	if len(recent) != 1 {
		t.Fatalf("recent entries = %d; want 1", len(recent))
	}
	if recent[0].RentalRef() != rentalID {
		t.Errorf("recent entry points at %q; want %q", recent[0].RentalRef(), rentalID)
	}
}

func TestTrackViewAnonymousStillCounts(t *testing.T) {
	env := newTestEnv()
	rentalID := env.seedRental(t, "owner", "Flat", 90000)

	env.rentals.TrackView(context.Background(), rentalID)

	if rental := env.rental(t, rentalID); rental.ViewCount != 1 {
		t.Errorf("viewCount = %d; want 1", rental.ViewCount)
	}
}

func TestListPopularRanksByScore(t *testing.T) {
	env := newTestEnv()
	quiet := env.seedRental(t, "owner", "Quiet", 90000)
	busy := env.seedRental(t, "owner", "Busy", 90000)
	archived := env.seedRental(t, "owner", "Gone", 90000)

	ctx := context.Background()
	env.popularity.IncrementView(ctx, quiet)
	for i := 0; i < 4; i++ {
		env.popularity.IncrementView(ctx, busy)
	}
	env.popularity.IncrementView(ctx, archived)
	if err := env.rentalRepo.SetStatus(ctx, archived, models.RentalStatusArchived); err != nil {
		t.Fatal(err)
	}

	rentals, err := env.rentals.ListPopular(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rentals) != 2 {
		t.Fatalf("popular listings = %d; want 2 (archived excluded)", len(rentals))
	}
	if rentals[0].ID != busy || rentals[1].ID != quiet {
		t.Errorf("order = %q, %q; want busy first", rentals[0].Title, rentals[1].Title)
	}
}

func TestArchiveOwnerOnly(t *testing.T) {
	env := newTestEnv()
	rentalID := env.seedRental(t, "owner", "Flat", 90000)

	if err := env.rentals.Archive(as("stranger"), rentalID); !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("stranger archive: err = %v; want ErrPermissionDenied", err)
	}
	if err := env.rentals.Archive(as("owner"), rentalID); err != nil {
		t.Fatal(err)
	}
	if rental := env.rental(t, rentalID); rental.Status != models.RentalStatusArchived {
		t.Errorf("status = %q; want archived", rental.Status)
	}
}

func TestCreateRentalSetsOwnerFromContext(t *testing.T) {
	env := newTestEnv()

	rental, err := env.rentals.Create(as("owner"), models.Rental{Title: "New flat", Price: 120000})
	if err != nil {
		t.Fatal(err)
	}
	if rental.OwnerID != "owner" {
		t.Errorf("ownerId = %q; want owner", rental.OwnerID)
	}
	if rental.Status != models.RentalStatusActive {
		t.Errorf("status = %q; want active", rental.Status)
	}

	stored := env.rental(t, rental.ID)
	if stored.ViewCount != 0 || stored.PopularityScore != 0 {
		t.Errorf("fresh counters = %+v", stored)
	}
}
