// README: Config loader; .env file, optional config file and environment, with defaults per concern.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr        string
		GinMode     string
		CORSOrigins []string
	}
	Log struct {
		Level  string
		Format string
	}
	AI struct {
		Provider       string
		Model          string
		Temperature    float32
		Timeout        time.Duration
		GeminiKey      string
		OpenAIKey      string
		OpenAIEndpoint string
		// Passthrough returns provider JSON without validation.
		Passthrough bool
	}
	Maps struct {
		APIKey       string
		Timeout      time.Duration
		RadiusMeters uint
		RouteHints   bool
	}
	Cache struct {
		Backend       string
		TTL           time.Duration
		RedisAddr     string
		RedisPassword string
		RedisDB       int
	}
	Trip struct {
		MaxDays int
	}
}

var defaults = map[string]any{
	"http.addr":         ":8080",
	"http.gin_mode":     "release",
	"http.cors_origins": "",

	"log.level":  "info",
	"log.format": "json",

	"ai.provider":        "gemini",
	"ai.model":           "",
	"ai.temperature":     0.4,
	"ai.timeout":         "30s",
	"ai.openai_endpoint": "",
	"ai.passthrough":     false,

	"maps.timeout":     "10s",
	"maps.radius_m":    7000,
	"maps.route_hints": true,

	"cache.backend":        "none",
	"cache.ttl":            "6h",
	"cache.redis_addr":     "localhost:6379",
	"cache.redis_password": "",
	"cache.redis_db":       0,

	"trip.max_days": 30,
}

// Provider keys keep their conventional unprefixed names.
var plainEnv = map[string]string{
	"ai.gemini_key": "GEMINI_API_KEY",
	"ai.openai_key": "OPENAI_API_KEY",
	"maps.api_key":  "GOOGLE_MAPS_API_KEY",
}

// Load reads configuration. Values come from, in increasing priority: defaults, configFile
// (when non-empty), a .env file in the working directory, and the process environment.
// Non-key settings use the TRIPGEN_ prefix, e.g. TRIPGEN_HTTP_ADDR.
func Load(configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	v.SetEnvPrefix("TRIPGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, env := range plainEnv {
		if err := v.BindEnv(k, env); err != nil {
			return Config{}, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.GinMode = v.GetString("http.gin_mode")
	cfg.HTTP.CORSOrigins = splitList(v.GetString("http.cors_origins"))
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(v.GetString("ai.provider")))
	cfg.AI.Model = v.GetString("ai.model")
	cfg.AI.Temperature = float32(v.GetFloat64("ai.temperature"))
	cfg.AI.Timeout = v.GetDuration("ai.timeout")
	cfg.AI.GeminiKey = strings.TrimSpace(v.GetString("ai.gemini_key"))
	cfg.AI.OpenAIKey = strings.TrimSpace(v.GetString("ai.openai_key"))
	cfg.AI.OpenAIEndpoint = v.GetString("ai.openai_endpoint")
	cfg.AI.Passthrough = v.GetBool("ai.passthrough")
	cfg.Maps.APIKey = strings.TrimSpace(v.GetString("maps.api_key"))
	cfg.Maps.Timeout = v.GetDuration("maps.timeout")
	cfg.Maps.RadiusMeters = v.GetUint("maps.radius_m")
	cfg.Maps.RouteHints = v.GetBool("maps.route_hints")
	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(v.GetString("cache.backend")))
	cfg.Cache.TTL = v.GetDuration("cache.ttl")
	cfg.Cache.RedisAddr = v.GetString("cache.redis_addr")
	cfg.Cache.RedisPassword = v.GetString("cache.redis_password")
	cfg.Cache.RedisDB = v.GetInt("cache.redis_db")
	cfg.Trip.MaxDays = v.GetInt("trip.max_days")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.AI.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown ai provider %q", c.AI.Provider)
	}
	switch c.Cache.Backend {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend != "none" && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Trip.MaxDays < 1 {
		return fmt.Errorf("max days must be at least 1, got %d", c.Trip.MaxDays)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
