// README: Composition root; turns Config into a ready TripPlanner with its provider adapters.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tripgen/internal/ai"
	"tripgen/internal/cache"
	"tripgen/internal/config"
	"tripgen/internal/infra"
	"tripgen/internal/itinerary"
	"tripgen/internal/maps"
	"tripgen/internal/service"
)

// App holds the wired planner and the resources that must be released on exit.
type App struct {
	Planner *service.TripPlanner

	closers []func() error
}

// New wires adapters from cfg. Missing provider keys leave the matching adapter unconfigured;
// an unreachable Redis disables caching instead of failing startup.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{}

	placeCache := a.buildCache(ctx, cfg, log)

	places, err := maps.NewPlacesService(cfg.Maps.APIKey, cfg.Maps.RadiusMeters, placeCache, log.Named("places"))
	if err != nil {
		return a.abort(fmt.Errorf("places service: %w", err))
	}

	var routes service.RouteHinter
	if cfg.Maps.RouteHints {
		rs, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			return a.abort(fmt.Errorf("route service: %w", err))
		}
		routes = rs
	}

	provider, err := a.buildProvider(ctx, cfg)
	if err != nil {
		return a.abort(err)
	}
	synth := ai.NewSynthesizer(provider)

	log.Info("planner configured",
		zap.Bool("places", places.Configured()),
		zap.Bool("route_hints", routes != nil && cfg.Maps.APIKey != ""),
		zap.String("ai_provider", synth.Provider()),
		zap.Bool("ai_passthrough", cfg.AI.Passthrough),
		zap.String("cache", cacheName(placeCache, cfg.Cache.Backend)),
	)

	a.Planner = service.NewTripPlanner(service.PlannerDeps{
		Attractions: places,
		Routes:      routes,
		Synthesizer: synth,
		Fallback:    itinerary.NewFallback(nil),
		Logger:      log.Named("planner"),
		Passthrough: cfg.AI.Passthrough,
		MapsTimeout: cfg.Maps.Timeout,
		AITimeout:   cfg.AI.Timeout,
	})
	return a, nil
}

// Close releases provider clients and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// abort releases whatever was opened before a wiring step failed.
func (a *App) abort(err error) (*App, error) {
	_ = a.Close()
	return nil, err
}

func (a *App) buildCache(ctx context.Context, cfg config.Config, log *zap.Logger) maps.Cache {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemory(cfg.Cache.TTL)
	case "redis":
		client, err := infra.NewRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, attraction cache disabled", zap.Error(err))
			return nil
		}
		a.closers = append(a.closers, client.Close)
		return cache.NewRedis(client, cfg.Cache.TTL)
	default:
		return nil
	}
}

// buildProvider returns a nil interface, not a typed nil, when no key is set.
func (a *App) buildProvider(ctx context.Context, cfg config.Config) (ai.TextProvider, error) {
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.OpenAIKey == "" {
			return nil, nil
		}
		return ai.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.OpenAIEndpoint, cfg.AI.Model, cfg.AI.Temperature), nil
	default:
		if cfg.AI.GeminiKey == "" {
			return nil, nil
		}
		p, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model, cfg.AI.Temperature)
		if err != nil {
			return nil, fmt.Errorf("gemini provider: %w", err)
		}
		a.closers = append(a.closers, p.Close)
		return p, nil
	}
}

func cacheName(c maps.Cache, backend string) string {
	if c == nil {
		return "none"
	}
	return backend
}
