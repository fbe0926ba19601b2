package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/telemedicina/booking-api/internal/core/service"
	"github.com/telemedicina/booking-api/internal/infrastructure/db"
	"github.com/telemedicina/booking-api/internal/pkg/config"
	"github.com/telemedicina/booking-api/pkg/logger"
)

var errVolatileStorage = errors.New("STORAGE_DRIVER=memory keeps no data between runs; point telemedctl at redis or mongo")

// app is what every subcommand operates on.
type app struct {
	admin   *service.UserAdmin
	backend *db.Backend
}

type appKey struct{}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "telemedctl",
		Short:         "Administer the telemedicine booking service",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return err
				}
			} else {
				_ = godotenv.Load()
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
				return a.backend.Close(cmd.Context())
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file instead of ./.env")

	root.AddCommand(newUsersCmd())
	return root
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Process(ctx, envconfig.OsLookuper())
	if err != nil {
		return nil, err
	}
	if cfg.StorageDriver == config.DriverMemory {
		return nil, errVolatileStorage
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	backend, err := db.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	users, err := service.NewUserRepository(ctx, backend.Store, log)
	if err != nil {
		_ = backend.Close(ctx)
		return nil, err
	}
	hasher := service.NewPasswordHasher(cfg.BcryptCost)

	return &app{
		admin:   service.NewUserAdmin(users, hasher, nil),
		backend: backend,
	}, nil
}

func appFrom(cmd *cobra.Command) *app {
	return cmd.Context().Value(appKey{}).(*app)
}
