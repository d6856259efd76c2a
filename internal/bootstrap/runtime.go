// Package bootstrap wires the process-level dependencies shared by the
// server and the CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/xanke/disney-sns/internal/cache"
	"github.com/xanke/disney-sns/internal/config"
	"github.com/xanke/disney-sns/internal/database"
	"github.com/xanke/disney-sns/internal/middleware"
	"github.com/xanke/disney-sns/internal/observability"
	"github.com/xanke/disney-sns/internal/seed"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedPreset, when set, seeds the database from this YAML preset after
	// connecting.
	SeedPreset string
}

// Runtime is what InitRuntime established.
type Runtime struct {
	DB            *gorm.DB
	Redis         *redis.Client
	ShutdownTrace func(context.Context) error
}

// InitTracing installs the tracer described by cfg.
func InitTracing(cfg *config.Config) (func(context.Context) error, error) {
	return observability.InitTracing(observability.TracingConfig{
		ServiceName:    "disney-sns",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
}

// InitRuntime sets up tracing, connects DB and Redis and optionally seeds.
// Redis is optional: an unreachable server leaves Redis nil.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	middleware.Logger = middleware.NewLogger(cfg.Env)

	shutdownTrace, err := InitTracing(cfg)
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		_ = shutdownTrace(ctx)
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	if opts.SeedPreset != "" {
		preset, err := seed.LoadPreset(opts.SeedPreset)
		if err != nil {
			return nil, err
		}
		if _, err := seed.NewSeeder(db, preset).Run(ctx); err != nil {
			return nil, fmt.Errorf("seeding failed: %w", err)
		}
	}

	return &Runtime{DB: db, Redis: cache.GetClient(), ShutdownTrace: shutdownTrace}, nil
}
