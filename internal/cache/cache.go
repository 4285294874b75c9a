// README: Attraction caches (in-process and Redis) keyed by destination and interest.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"tripgen/internal/itinerary"
)

const keyPrefix = "tripgen:"

// Memory is a process-local cache with per-entry expiry.
type Memory struct {
	c *gocache.Cache
}

// NewMemory returns a Memory cache whose entries live for ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]itinerary.Place, bool, error) {
	v, ok := m.c.Get(keyPrefix + key)
	if !ok {
		return nil, false, nil
	}
	places, ok := v.([]itinerary.Place)
	if !ok {
		return nil, false, fmt.Errorf("cache entry %q has type %T", key, v)
	}
	return clonePlaces(places), true, nil
}

func (m *Memory) Set(_ context.Context, key string, places []itinerary.Place) error {
	m.c.SetDefault(keyPrefix+key, clonePlaces(places))
	return nil
}

// Redis stores place lists as JSON strings with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]itinerary.Place, bool, error) {
	b, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var places []itinerary.Place
	if err := json.Unmarshal(b, &places); err != nil {
		return nil, false, fmt.Errorf("redis decode %q: %w", key, err)
	}
	return places, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, places []itinerary.Place) error {
	b, err := json.Marshal(places)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, keyPrefix+key, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func clonePlaces(places []itinerary.Place) []itinerary.Place {
	out := make([]itinerary.Place, len(places))
	copy(out, places)
	return out
}
