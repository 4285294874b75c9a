package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_MAPS_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Empty(t, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.InDelta(t, 0.4, cfg.AI.Temperature, 1e-6)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Maps.Timeout)
	assert.Equal(t, uint(7000), cfg.Maps.RadiusMeters)
	assert.True(t, cfg.Maps.RouteHints)
	assert.False(t, cfg.AI.Passthrough)
	assert.Equal(t, "none", cfg.Cache.Backend)
	assert.Equal(t, 30, cfg.Trip.MaxDays)
	assert.Empty(t, cfg.AI.GeminiKey)
	assert.Empty(t, cfg.Maps.APIKey)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TRIPGEN_HTTP_ADDR", ":9090")
	t.Setenv("TRIPGEN_HTTP_CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("TRIPGEN_AI_PROVIDER", "OpenAI")
	t.Setenv("TRIPGEN_AI_TIMEOUT", "5s")
	t.Setenv("TRIPGEN_AI_PASSTHROUGH", "true")
	t.Setenv("TRIPGEN_CACHE_BACKEND", "memory")
	t.Setenv("GEMINI_API_KEY", " gem-key ")
	t.Setenv("OPENAI_API_KEY", "sk-key")
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.True(t, cfg.AI.Passthrough)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, "gem-key", cfg.AI.GeminiKey)
	assert.Equal(t, "sk-key", cfg.AI.OpenAIKey)
	assert.Equal(t, "maps-key", cfg.Maps.APIKey)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripgen.yaml")
	content := "http:\n  addr: \":7070\"\ntrip:\n  max_days: 10\nmaps:\n  route_hints: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, 10, cfg.Trip.MaxDays)
	assert.False(t, cfg.Maps.RouteHints)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"TRIPGEN_AI_PROVIDER": "claude"}},
		{"unknown cache", map[string]string{"TRIPGEN_CACHE_BACKEND": "memcached"}},
		{"zero ttl", map[string]string{"TRIPGEN_CACHE_BACKEND": "redis", "TRIPGEN_CACHE_TTL": "0s"}},
		{"zero max days", map[string]string{"TRIPGEN_TRIP_MAX_DAYS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
