// Package db opens the storage driver selected by configuration.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/infrastructure/db/memory"
	mongodb "github.com/telemedicina/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/telemedicina/booking-api/internal/infrastructure/db/redis"
	"github.com/telemedicina/booking-api/internal/pkg/config"
)

// Backend is an opened storage driver.
type Backend struct {
	Driver string
	Store  ports.Store
	// Pingers is what the readiness probe checks, keyed by dependency name.
	Pingers map[string]ports.Pinger
	// Activity is the durable activity sink, nil when the driver has none.
	Activity ports.ActivitySink

	closers []func(context.Context) error
}

// Open connects the driver named by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	b := &Backend{Driver: cfg.StorageDriver, Pingers: make(map[string]ports.Pinger)}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		b.Store = memory.NewStore()
		log.Warn().Msg("using in-memory storage, data is lost on restart")

	case config.DriverRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		store := redisdb.NewStore(client, cfg.Redis.Prefix)
		b.Store = store
		b.Pingers["redis"] = store
		b.closers = append(b.closers, func(context.Context) error { return client.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis storage connected")

	case config.DriverMongo:
		client, database, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		store := mongodb.NewStore(database)
		b.Store = store
		b.Pingers["mongo"] = store
		b.Activity = mongodb.NewActivityRepository(database)
		b.closers = append(b.closers, client.Disconnect)
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo storage connected")

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	return b, nil
}

// Close releases the driver's connections.
func (b *Backend) Close(ctx context.Context) error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c(ctx))
	}
	return errors.Join(errs...)
}
