package repositories

import (
	"context"
	"errors"

	"khstayBack/internal/models"
	"khstayBack/internal/store"
)

type FavoriteRepository struct {
	Store store.Store
}

// Add stores the favorite under users/{uid}/favorites keyed by the rental id,
// so favoriting twice overwrites instead of duplicating.
func (r *FavoriteRepository) Add(ctx context.Context, userID string, fav models.Favorite) error {
	return r.Store.Set(ctx, favoritesCol(userID), fav.PropertyID, map[string]interface{}{
		"propertyId":       fav.PropertyID,
		"propertyName":     fav.PropertyName,
		"propertyImage":    fav.PropertyImage,
		"propertyPrice":    fav.PropertyPrice,
		"propertyLocation": fav.PropertyLocation,
		"timestamp":        fav.Timestamp,
	})
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, rentalID string) error {
	return r.Store.Delete(ctx, favoritesCol(userID), rentalID)
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, rentalID string) (bool, error) {
	_, err := r.Store.Get(ctx, favoritesCol(userID), rentalID)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *FavoriteRepository) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	docs, err := r.Store.Query(ctx, favoritesCol(userID), store.Query{
		OrderBy: []store.Order{{Field: "timestamp", Desc: true}},
	})
	if err != nil {
		return nil, err
	}
	favs := make([]models.Favorite, 0, len(docs))
	for _, doc := range docs {
		favs = append(favs, favoriteFromDoc(doc.ID, doc.Data))
	}
	return favs, nil
}

func favoriteFromDoc(id string, data map[string]interface{}) models.Favorite {
	fav := models.Favorite{
		PropertyID:       store.Str(data, "propertyId"),
		PropertyName:     store.Str(data, "propertyName"),
		PropertyImage:    store.Str(data, "propertyImage"),
		PropertyPrice:    store.Str(data, "propertyPrice"),
		PropertyLocation: store.Str(data, "propertyLocation"),
		Timestamp:        store.Time(data, "timestamp"),
	}
	if fav.PropertyID == "" {
		// Old entries stored the rental id only as the document id.
		fav.PropertyID = id
	}
	return fav
}
