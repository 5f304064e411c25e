package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ren-lyn/midterm-lab3/internal/adapter/docstore"
	"github.com/ren-lyn/midterm-lab3/internal/adapter/postgres"
	userrepo "github.com/ren-lyn/midterm-lab3/internal/adapter/postgres/user"
	"github.com/ren-lyn/midterm-lab3/internal/config"
	"github.com/ren-lyn/midterm-lab3/internal/domain"
	"github.com/ren-lyn/midterm-lab3/migrations"
)

// recordStore is what the service and the health probes need from a
// backend.
type recordStore interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// backend bundles an opened store with its readiness check and the
// function that releases it.
type backend struct {
	users recordStore
	ping  pinger
	close func()
}

// openBackend opens the store selected by cfg.Store.Driver.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
				pool.Close()
				return nil, err
			}
		}
		logger.Info("store opened", slog.String("driver", cfg.Store.Driver))
		return &backend{users: userrepo.New(pool), ping: pool, close: pool.Close}, nil

	case config.StoreDriverMemory:
		store := docstore.New(logger, nil)
		logger.Info("store opened", slog.String("driver", cfg.Store.Driver))
		return &backend{users: store, ping: store, close: store.Wait}, nil

	case config.StoreDriverFile:
		persister, err := docstore.NewPersistence(cfg.Store.DataDir)
		if err != nil {
			return nil, err
		}
		store, err := docstore.Open(logger, persister)
		if err != nil {
			return nil, err
		}
		logger.Info("store opened",
			slog.String("driver", cfg.Store.Driver),
			slog.String("data_dir", cfg.Store.DataDir),
		)
		return &backend{users: store, ping: store, close: store.Wait}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
