// README: Redis-backed geocode cache. Only coordinates are cached, never prices or routes.
package maps

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"carhire/internal/types"
)

const (
	geocodeKeyPrefix = "geocode:"
	defaultCacheTTL  = 30 * 24 * time.Hour
)

// Provider is the geocoding/routing surface wrapped by the cache.
type Provider interface {
	Geocode(ctx context.Context, address string) (types.Point, error)
	Route(ctx context.Context, origin, dest types.Point) (types.Route, error)
}

type CachedGeocoder struct {
	next  Provider
	redis *redis.Client
	ttl   time.Duration
	log   *slog.Logger
}

func NewCachedGeocoder(next Provider, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *CachedGeocoder {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &CachedGeocoder{next: next, redis: rdb, ttl: ttl, log: log}
}

// Geocode serves hits from Redis and stores fresh results. Misses and provider
// errors are not cached. A Redis outage degrades to calling the provider.
func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (types.Point, error) {
	key := geocodeKey(address)
	if p, ok, err := c.lookup(ctx, key); err != nil {
		c.log.Warn("geocode cache read failed", "key", key, "err", err)
	} else if ok {
		return p, nil
	}

	p, err := c.next.Geocode(ctx, address)
	if err != nil {
		return types.Point{}, err
	}

	pipe := c.redis.Pipeline()
	pipe.HSet(ctx, key,
		"lat", strconv.FormatFloat(p.Lat, 'f', -1, 64),
		"lng", strconv.FormatFloat(p.Lng, 'f', -1, 64),
	)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("geocode cache write failed", "key", key, "err", err)
	}
	return p, nil
}

func (c *CachedGeocoder) Route(ctx context.Context, origin, dest types.Point) (types.Route, error) {
	return c.next.Route(ctx, origin, dest)
}

func (c *CachedGeocoder) lookup(ctx context.Context, key string) (types.Point, bool, error) {
	vals, err := c.redis.HGetAll(ctx, key).Result()
	if err != nil {
		return types.Point{}, false, err
	}
	latS, okLat := vals["lat"]
	lngS, okLng := vals["lng"]
	if !okLat || !okLng {
		return types.Point{}, false, nil
	}
	lat, err := strconv.ParseFloat(latS, 64)
	if err != nil {
		return types.Point{}, false, err
	}
	lng, err := strconv.ParseFloat(lngS, 64)
	if err != nil {
		return types.Point{}, false, err
	}
	return types.Point{Lat: lat, Lng: lng}, true, nil
}

// geocodeKey normalizes case and whitespace so trivially different spellings share an entry.
func geocodeKey(address string) string {
	return geocodeKeyPrefix + strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
