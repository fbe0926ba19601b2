// @title                       Telemedicina Booking API
// @version                     1.0
// @description                 Sessions, appointment cart, profiles and user administration for the telemedicine booking app.
// @BasePath                    /
// @securityDefinitions.apikey  ClientToken
// @in                          header
// @name                        X-Session-Token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/telemedicina/booking-api/internal/api"
	"github.com/telemedicina/booking-api/internal/api/metrics"
	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/core/service"
	"github.com/telemedicina/booking-api/internal/infrastructure/catalog"
	"github.com/telemedicina/booking-api/internal/infrastructure/db"
	"github.com/telemedicina/booking-api/internal/infrastructure/queue"
	"github.com/telemedicina/booking-api/internal/pkg/config"
	"github.com/telemedicina/booking-api/internal/pkg/navigation"
	"github.com/telemedicina/booking-api/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute

	// telemedctl writes users straight to the store.
	usersRefresh = 5 * time.Second
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "telemed-booking-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := db.Open(ctx, cfg, logger.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("storage close")
		}
	}()

	users, err := service.NewUserRepository(ctx, backend.Store, logger.Component("users"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load users")
	}
	cart, err := service.NewCartStore(ctx, backend.Store, logger.Component("cart"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load cart")
	}
	hasher := service.NewPasswordHasher(cfg.BcryptCost)

	var remote ports.CatalogClient
	if cfg.Catalog.BaseURL != "" {
		remote = catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	}

	boot := service.NewBootstrapper(users, cart, remote, hasher, logger.Component("bootstrap"))
	if err := boot.Run(ctx, service.AdminAccount{
		Name:     cfg.Admin.Name,
		Handle:   cfg.Admin.Handle,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}); err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}

	sink := backend.Activity
	if sink == nil {
		sink = queue.NewLogSink(log)
	}
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	activity := queue.NewDispatcher(cfg.ActivityWorkers, sink, logger.Component("activity"))
	activity.Start(workerCtx)

	registry := service.NewWorkspaceRegistry(backend.Store, users, cart, hasher, navigation.ContextNavigator{}, activity,
		service.WorkspaceOptions{
			NoticeTTL:     cfg.NoticeTTL,
			EmailDebounce: cfg.EmailCheckDebounce,
			OnCountChange: func(n int) { metrics.WorkspacesActive.Set(float64(n)) },
		},
		logger.Component("workspaces"))
	go registry.Run(ctx, sweepInterval, cfg.WorkspaceIdle)
	go users.Watch(ctx, usersRefresh)

	e := api.NewRouter(api.Dependencies{
		Workspaces: registry,
		Admin:      service.NewUserAdmin(users, hasher, activity),
		Catalog:    service.NewCatalogService(remote, logger.Component("catalog")),
		Pingers:    backend.Pingers,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		Log:        logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", backend.Driver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stopWorkers()
	activity.Wait()
	log.Info().Msg("stopped")
}
