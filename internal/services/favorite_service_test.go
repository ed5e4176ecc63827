package services

import (
	"testing"
)

func TestFavoriteAddRemoveKeepsCounterExact(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "guest")
	rentalID := env.seedRental(t, "owner", "Flat", 90000)

	if err := env.favorites.Add(as("guest"), rentalID); err != nil {
		t.Fatal(err)
	}
	// Favoriting again must not double count.
	if err := env.favorites.Add(as("guest"), rentalID); err != nil {
		t.Fatal(err)
	}
	if rental := env.rental(t, rentalID); rental.FavoriteCount != 1 {
		t.Errorf("favoriteCount = %d; want 1", rental.FavoriteCount)
	}

	fav, err := env.favorites.IsFavorite(as("guest"), rentalID)
	if err != nil {
		t.Fatal(err)
	}
	if !fav {
		t.Error("IsFavorite = false after Add")
	}

	if err := env.favorites.Remove(as("guest"), rentalID); err != nil {
		t.Fatal(err)
	}
	if rental := env.rental(t, rentalID); rental.FavoriteCount != 0 {
		t.Errorf("favoriteCount = %d; want 0", rental.FavoriteCount)
	}
	// Removing a non-favorite is a no-op.
	if err := env.favorites.Remove(as("guest"), rentalID); err != nil {
		t.Fatal(err)
	}
	if rental := env.rental(t, rentalID); rental.FavoriteCount != 0 {
		t.Errorf("favoriteCount after second remove = %d; want 0", rental.FavoriteCount)
	}
}

func TestFavoriteListSnapshot(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "guest")
	rentalID := env.seedRental(t, "owner", "Cozy flat", 150000)

	if err := env.favorites.Add(as("guest"), rentalID); err != nil {
		t.Fatal(err)
	}
	favs, err := env.favorites.List(as("guest"))
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 1 {
		t.Fatalf("favorites = %d; want 1", len(favs))
	}
	if favs[0].PropertyID != rentalID || favs[0].PropertyName != "Cozy flat" {
		t.Errorf("favorite snapshot = %+v", favs[0])
	}
}

func TestClearFavorites(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "guest")
	first := env.seedRental(t, "owner", "First", 90000)
	second := env.seedRental(t, "owner", "Second", 120000)

	if err := env.favorites.Add(as("guest"), first); err != nil {
		t.Fatal(err)
	}
	if err := env.favorites.Add(as("guest"), second); err != nil {
		t.Fatal(err)
	}

	if err := env.favorites.Clear(as("guest")); err != nil {
		t.Fatal(err)
	}

	favs, err := env.favorites.List(as("guest"))
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 0 {
		t.Errorf("favorites after clear = %d; want 0", len(favs))
	}
	if rental := env.rental(t, first); rental.FavoriteCount != 0 {
		t.Errorf("first favoriteCount = %d; want 0", rental.FavoriteCount)
	}
	if rental := env.rental(t, second); rental.FavoriteCount != 0 {
		t.Errorf("second favoriteCount = %d; want 0", rental.FavoriteCount)
	}
}
