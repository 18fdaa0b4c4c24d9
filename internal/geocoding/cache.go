package geocoding

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/SerikaliMap/serikali-backend/internal/metrics"
	"github.com/redis/go-redis/v9"
)

// Forwarder is the geocoding call the cache wraps.
type Forwarder interface {
	Forward(ctx context.Context, place string) (lng, lat float64, ok bool, err error)
}

// CachedForwarder memoizes geocode results in Redis, keyed by the
// normalized place text. Hot place names (county seats, CBDs) repeat
// constantly and Mapbox calls are the slowest hop in the request path.
// A nil Redis client disables caching without changing behavior; errors
// from the geocoder are never cached.
type CachedForwarder struct {
	inner Forwarder
	rc    *redis.Client
	ttl   time.Duration
}

func NewCachedForwarder(inner Forwarder, rc *redis.Client, ttl time.Duration) *CachedForwarder {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedForwarder{inner: inner, rc: rc, ttl: ttl}
}

type cachedCoord struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
	OK  bool    `json:"ok"`
}

func cacheKey(place string) string {
	return "geocode:" + strings.ToLower(strings.Join(strings.Fields(place), " "))
}

func (c *CachedForwarder) Forward(ctx context.Context, place string) (float64, float64, bool, error) {
	key := cacheKey(place)
	if c.rc != nil {
		if s, _ := c.rc.Get(ctx, key).Result(); s != "" {
			var cc cachedCoord
			if err := json.Unmarshal([]byte(s), &cc); err == nil {
				metrics.GeocodeCacheHitsTotal.Inc()
				return cc.Lng, cc.Lat, cc.OK, nil
			}
		}
		metrics.GeocodeCacheMissesTotal.Inc()
	}

	lng, lat, ok, err := c.inner.Forward(ctx, place)
	if err != nil {
		metrics.GeocodeFailTotal.Inc()
		return 0, 0, false, err
	}

	if c.rc != nil {
		b, _ := json.Marshal(cachedCoord{Lng: lng, Lat: lat, OK: ok})
		_ = c.rc.Set(ctx, key, string(b), c.ttl).Err()
	}
	return lng, lat, ok, nil
}

// OpenRedis builds a Redis client from addr, or returns nil when unset.
func OpenRedis(addr, pass string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass})
}
