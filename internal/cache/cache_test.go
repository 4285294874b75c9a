package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripgen/internal/itinerary"
)

func samplePlaces() []itinerary.Place {
	return []itinerary.Place{
		{Name: "Fort Aguada", Vicinity: "Candolim", DistanceKm: 12.1},
		{Name: "Baga Beach", Vicinity: "Baga"},
	}
}

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	_, ok, err := m.Get(ctx, "attractions:goa:beach")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "attractions:goa:beach", samplePlaces()))

	got, ok, err := m.Get(ctx, "attractions:goa:beach")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, samplePlaces(), got)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	places := samplePlaces()
	require.NoError(t, m.Set(ctx, "k", places))
	places[0].Name = "mutated"

	got, _, _ := m.Get(ctx, "k")
	got[1].Name = "also mutated"

	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, samplePlaces(), again)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(20 * time.Millisecond)
	require.NoError(t, m.Set(ctx, "k", samplePlaces()))

	time.Sleep(50 * time.Millisecond)

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestRedis_GetSet runs against a real server and skips when TRIPGEN_TEST_REDIS_ADDR is not set.
func TestRedis_GetSet(t *testing.T) {
	addr := os.Getenv("TRIPGEN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRIPGEN_TEST_REDIS_ADDR not set; skipping redis-backed tests")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	key := fmt.Sprintf("test:%d", time.Now().UnixNano())
	t.Cleanup(func() { client.Del(context.Background(), keyPrefix+key) })

	r := NewRedis(client, time.Minute)

	_, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, key, samplePlaces()))

	got, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, samplePlaces(), got)

	ttl, err := client.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
