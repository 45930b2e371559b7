// Package app wires configuration, storage clients and domain services into
// one container shared by the command line entry points.
package app

import (
	"context"
	"fmt"

	"github.com/doorsanddrawers/quote-backend/internal/cart"
	"github.com/doorsanddrawers/quote-backend/internal/catalog"
	"github.com/doorsanddrawers/quote-backend/internal/customers"
	"github.com/doorsanddrawers/quote-backend/internal/defaults"
	"github.com/doorsanddrawers/quote-backend/internal/orders"
	"github.com/doorsanddrawers/quote-backend/pkg/config"
	"github.com/doorsanddrawers/quote-backend/pkg/db"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
	"github.com/doorsanddrawers/quote-backend/pkg/metrics"
	"github.com/doorsanddrawers/quote-backend/pkg/migrate"
	"github.com/doorsanddrawers/quote-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// App holds the long lived clients and services.
type App struct {
	DB        *db.Client
	Redis     *redis.Client
	Customers customers.Service
	Defaults  defaults.Service
	Orders    orders.Service
	Cart      cart.Service
}

// Deps are the already connected collaborators Assemble builds services on.
type Deps struct {
	DB         *db.Client
	CartStore  cart.Store
	Registerer prometheus.Registerer
	Logger     *logger.Logger
}

// New connects to the database and redis, runs dev migrations and assembles
// the services.
func New(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return nil, multierr.Append(fmt.Errorf("schema: %w", err), dbClient.Close())
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("redis: %w", err), dbClient.Close())
	}
	store, err := cart.NewRedisStore(redisClient, cfg.Cart.TTL)
	if err != nil {
		return nil, multierr.Combine(err, redisClient.Close(), dbClient.Close())
	}

	a, err := Assemble(Deps{
		DB:         dbClient,
		CartStore:  store,
		Registerer: prometheus.DefaultRegisterer,
		Logger:     logg,
	})
	if err != nil {
		return nil, multierr.Combine(err, redisClient.Close(), dbClient.Close())
	}
	a.Redis = redisClient
	return a, nil
}

// Assemble builds every service on top of connected clients.
func Assemble(deps Deps) (*App, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if deps.CartStore == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}

	conn := deps.DB.DB()
	customerRepo := customers.NewRepository(conn)
	catalogRepo := catalog.NewRepository(conn)
	globalsRepo := defaults.NewGlobalsRepository(conn)
	orderRepo := orders.NewRepository(conn)

	customerSvc, err := customers.NewService(customerRepo)
	if err != nil {
		return nil, err
	}
	defaultsSvc, err := defaults.NewService(customerRepo, catalogRepo, globalsRepo, deps.DB, deps.Logger)
	if err != nil {
		return nil, err
	}
	orderSvc, err := orders.NewService(orderRepo, customerRepo, deps.DB, deps.Logger)
	if err != nil {
		return nil, err
	}
	cartSvc, err := cart.NewService(cart.Deps{
		Store:     deps.CartStore,
		Customers: customerRepo,
		Catalog:   catalogRepo,
		Globals:   globalsRepo,
		Orders:    orderRepo,
		Tx:        deps.DB,
		Metrics:   metrics.NewFinalizeMetrics(deps.Registerer),
		Logger:    deps.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		DB:        deps.DB,
		Customers: customerSvc,
		Defaults:  defaultsSvc,
		Orders:    orderSvc,
		Cart:      cartSvc,
	}, nil
}

// Close releases redis and database connections.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var err error
	if a.Redis != nil {
		err = multierr.Append(err, a.Redis.Close())
	}
	if a.DB != nil {
		err = multierr.Append(err, a.DB.Close())
	}
	return err
}
