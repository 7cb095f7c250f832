package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fos/internal/domain"
	"github.com/vladislavdragonenkov/fos/internal/storage/memory"
	"github.com/vladislavdragonenkov/fos/internal/storage/mongo"
	"github.com/vladislavdragonenkov/fos/internal/storage/postgres"
)

// Dependencies содержит репозитории и привязанные к ним служебные функции.
type Dependencies struct {
	Meals  domain.MealRepository
	Orders domain.OrderRepository

	// CartSlot — долговременный слот корзины. В серверном режиме это
	// in-memory заглушка: настоящий слот живёт на стороне клиента.
	CartSlot domain.CartStorage

	Logger *log.Entry

	// Ping проверяет доступность бэкенда; nil для memory.
	Ping func(ctx context.Context) error
	// Close освобождает соединения бэкенда; nil для memory.
	Close func(ctx context.Context) error
}

// NewDependencies создаёт репозитории поверх бэкенда из конфигурации.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		CartSlot: memory.NewCartStorage(),
		Logger:   logger,
	}

	switch cfg.Storage {
	case StorageMemory, "":
		deps.Meals = memory.NewMealRepository()
		deps.Orders = memory.NewOrderRepository()
		logger.Info("using in-memory storage")

	case StorageMongo:
		store, err := mongo.Open(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		deps.Meals = mongo.NewMealRepository(store)
		deps.Orders = mongo.NewOrderRepository(store)
		deps.Ping = store.Ping
		deps.Close = store.Close
		logger.WithField("database", cfg.MongoDB).Info("using mongo storage")

	case StoragePostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		deps.Meals = postgres.NewMealRepository(store)
		deps.Orders = postgres.NewOrderRepository(store)
		deps.Ping = store.Ping
		deps.Close = func(context.Context) error { return store.Close() }
		logger.Info("using postgres storage")

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	return deps, nil
}
