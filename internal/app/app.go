// Package app assembles the ledger from configuration. The HTTP server and
// ledgerctl share it.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/Eursukkul/restaurant-ledger/config"
	"github.com/Eursukkul/restaurant-ledger/internal/lock"
	"github.com/Eursukkul/restaurant-ledger/internal/repository"
	"github.com/Eursukkul/restaurant-ledger/internal/service"
	"github.com/Eursukkul/restaurant-ledger/pkg/database"
	"github.com/Eursukkul/restaurant-ledger/pkg/rabbitmq"
	"github.com/go-redis/redis/v8"
)

type App struct {
	Config       *config.Config
	Store        repository.RowStore
	Reservations service.ReservationService
	Orders       service.OrderService
	Menu         service.MenuService
	// Publisher is nil when RABBITMQ_URL is not set.
	Publisher *rabbitmq.Publisher

	closers []func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	opts, err := serviceOptions(cfg)
	if err != nil {
		return nil, err
	}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store

	locker, err := a.newLocker(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var events service.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Publisher = pub
		a.closers = append(a.closers, pub.Close)
		events = pub
	} else {
		log.Println("[App] RABBITMQ_URL not set, domain events disabled")
	}

	a.Reservations = service.NewReservationService(repository.NewReservationRepository(store), locker, events, opts)
	a.Orders = service.NewOrderService(repository.NewOrderRepository(store), locker, events, opts)
	a.Menu = service.NewMenuService(repository.NewMenuRepository(store))
	return a, nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openStore(ctx context.Context) (repository.RowStore, error) {
	cfg := a.Config
	var store interface {
		repository.RowStore
		repository.SheetInitializer
	}

	switch cfg.DBDriver {
	case "memory":
		store = repository.NewMemoryStore()
	case "postgres", "sqlite":
		db, err := database.Open(cfg.DBDriver, cfg.DSN(), database.PoolConfig{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func() { sqlDB.Close() })
		}
		store = repository.NewGormStore(db)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if err := repository.EnsureSheets(ctx, store); err != nil {
		return nil, fmt.Errorf("ensure worksheets: %w", err)
	}
	return store, nil
}

func (a *App) newLocker(ctx context.Context) (lock.Locker, error) {
	cfg := a.Config
	switch cfg.LockBackend {
	case "memory", "":
		return lock.NewKeyedMutex(), nil
	case "none":
		log.Println("[App] LOCK_BACKEND=none, concurrent bookings are not serialized")
		return lock.Noop{}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		a.closers = append(a.closers, func() { client.Close() })
		return lock.NewRedisLocker(client, cfg.LockTTL), nil
	default:
		return nil, fmt.Errorf("unsupported LOCK_BACKEND %q", cfg.LockBackend)
	}
}

func serviceOptions(cfg *config.Config) (service.Options, error) {
	policy := service.StatusPolicy(cfg.StatusPolicy)
	switch policy {
	case service.PolicyStrict, service.PolicyPermissive:
	case "":
		policy = service.PolicyPermissive
	default:
		return service.Options{}, fmt.Errorf("unsupported STATUS_POLICY %q", cfg.StatusPolicy)
	}
	return service.Options{
		MaxCapacity: cfg.MaxCapacity,
		Policy:      policy,
		Location:    cfg.Location(),
	}, nil
}
