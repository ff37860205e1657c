package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const DefaultExpiration = 90 * time.Minute

// Cache memoises lookup results as JSON for a bounded time
type Cache struct {
	Cache *cache.Cache[string]

	Expiration time.Duration
}

func New(client *redis.Client, expiration time.Duration) *Cache {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}

	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &Cache{
		Cache:      cache.New[string](redisStore),
		Expiration: expiration,
	}
}

// Get decodes a cached value into value. A miss is reported as false with the store error.
func (c *Cache) Get(ctx context.Context, key string, value any) (bool, error) {
	cachedValue, err := c.Cache.Get(ctx, key)
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(cachedValue), value); err != nil {
		return false, err
	}

	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, key, string(valueJSON))
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.Cache.Delete(ctx, key)
}
