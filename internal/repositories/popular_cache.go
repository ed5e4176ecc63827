package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"khstayBack/internal/models"
)

const popularCacheKey = "rentals:popular"

// PopularCache keeps the ranked popular-listings response in Redis for a
// short window. The popularity score itself always lives in the document
// store; this only spares the hot read path.
type PopularCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func (c *PopularCache) Get(ctx context.Context) ([]models.Rental, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, popularCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var rentals []models.Rental
	if err := json.Unmarshal(raw, &rentals); err != nil {
		return nil, false
	}
	return rentals, true
}

func (c *PopularCache) Set(ctx context.Context, rentals []models.Rental) {
	if c == nil || c.Client == nil {
		return
	}
	raw, err := json.Marshal(rentals)
	if err != nil {
		return
	}
	ttl := c.TTL
	if ttl == 0 {
		ttl = time.Minute
	}
	c.Client.Set(ctx, popularCacheKey, raw, ttl)
}

// Invalidate drops the cached ranking, e.g. after a listing is archived.
func (c *PopularCache) Invalidate(ctx context.Context) {
	if c == nil || c.Client == nil {
		return
	}
	c.Client.Del(ctx, popularCacheKey)
}
