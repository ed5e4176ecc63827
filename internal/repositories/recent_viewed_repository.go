package repositories

import (
	"context"

	"khstayBack/internal/models"
	"khstayBack/internal/store"
)

// recentViewedCap bounds the per-user history list.
const recentViewedCap = 20

type RecentViewedRepository struct {
	Store store.Store
}

func (r *RecentViewedRepository) Record(ctx context.Context, userID string, item models.RecentViewed) error {
	err := r.Store.Set(ctx, recentViewedCol(userID), item.RentalRef(), map[string]interface{}{
		"rentalId": item.RentalRef(),
		"title":    item.Title,
		"imageUrl": item.ImageURL,
		"viewedAt": item.ViewedAt,
	})
	if err != nil {
		return err
	}
	return r.prune(ctx, userID)
}

func (r *RecentViewedRepository) List(ctx context.Context, userID string) ([]models.RecentViewed, error) {
	docs, err := r.Store.Query(ctx, recentViewedCol(userID), store.Query{
		OrderBy: []store.Order{{Field: "viewedAt", Desc: true}},
		Limit:   recentViewedCap,
	})
	if err != nil {
		return nil, err
	}
	items := make([]models.RecentViewed, 0, len(docs))
	for _, doc := range docs {
		items = append(items, models.RecentViewed{
			ID:         doc.ID,
			RentalID:   store.Str(doc.Data, "rentalId"),
			PropertyID: store.Str(doc.Data, "propertyId"),
			Title:      store.Str(doc.Data, "title"),
			ImageURL:   store.Str(doc.Data, "imageUrl"),
			ViewedAt:   store.Time(doc.Data, "viewedAt"),
		})
	}
	return items, nil
}

func (r *RecentViewedRepository) prune(ctx context.Context, userID string) error {
	docs, err := r.Store.Query(ctx, recentViewedCol(userID), store.Query{
		OrderBy: []store.Order{{Field: "viewedAt", Desc: true}},
	})
	if err != nil {
		return err
	}
	for i := recentViewedCap; i < len(docs); i++ {
		if err := r.Store.Delete(ctx, recentViewedCol(userID), docs[i].ID); err != nil {
			return err
		}
	}
	return nil
}
