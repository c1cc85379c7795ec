package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/yummy-admin/internal/api/http"
	"github.com/spec-kit/yummy-admin/internal/api/http/handlers"
	"github.com/spec-kit/yummy-admin/internal/config"
	"github.com/spec-kit/yummy-admin/internal/events"
	"github.com/spec-kit/yummy-admin/internal/guard"
	"github.com/spec-kit/yummy-admin/internal/observability"
	"github.com/spec-kit/yummy-admin/internal/orders"
	"github.com/spec-kit/yummy-admin/internal/persistence"
	"github.com/spec-kit/yummy-admin/internal/restaurant"
	"github.com/spec-kit/yummy-admin/internal/session"
	"github.com/spec-kit/yummy-admin/internal/upstream"
	"github.com/spec-kit/yummy-admin/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	storage := persistence.NewRedisKV(redis, cfg.Session.KeyPrefix, cfg.Session.PersistTTL())
	backend := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout(), logger)
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	sessionStore := session.NewStore(storage, backend, dispatcher, logger)
	restaurantStore := restaurant.NewStore(storage, backend, dispatcher, logger)
	routeGuard := guard.New(sessionStore)
	aggregator := orders.NewAggregator(backend, backend, dispatcher, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Session:    handlers.NewSessionHandler(sessionStore),
		Nav:        handlers.NewNavHandler(sessionStore),
		Restaurant: handlers.NewRestaurantHandler(restaurantStore),
		Orders:     handlers.NewOrdersHandler(aggregator),
		Guard:      routeGuard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
