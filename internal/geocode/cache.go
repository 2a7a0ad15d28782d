package geocode

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// cachedGeocoder is a read-through Redis cache in front of another Geocoder.
// Cache failures are logged and ignored so a Redis outage never blocks a
// search.
type cachedGeocoder struct {
	inner Geocoder
	rdb   *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewCached(inner Geocoder, rdb *redis.Client, ttl time.Duration, log *zap.Logger) Geocoder {
	return &cachedGeocoder{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		log:   log.With(zap.String("service", "geocode_cache")),
	}
}

func cacheKey(address string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(address))
}

func (c *cachedGeocoder) Geocode(ctx context.Context, address string) (Point, error) {
	key := cacheKey(address)

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var point Point
		if err := json.Unmarshal([]byte(cached), &point); err == nil {
			return point, nil
		}
		c.log.Warn("Discarding malformed cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		c.log.Warn("Geocode cache read failed", zap.Error(err))
	}

	point, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return Point{}, err
	}

	if data, err := json.Marshal(point); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("Geocode cache write failed", zap.Error(err))
		}
	}

	return point, nil
}
