package main

import (
	"context"
	"net/http"
	"time"

	"food-platform/config"
	httpapi "food-platform/order-svc/internal/api/http"
	"food-platform/order-svc/internal/clients"
	"food-platform/order-svc/internal/service"
	"food-platform/order-svc/internal/storage"

	"go.uber.org/zap"
)

const (
	defaultLockTTL         = 10 * time.Second
	defaultUpstreamTimeout = 5 * time.Second
)

func main() {
	config.LoadEnv()
	logger := config.NewLogger("order-svc")
	defer logger.Sync()

	ctx, stop := config.SignalContext()
	defer stop()

	db := config.MustInitPostgres("postgres", logger)
	defer db.Close()
	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		logger.Fatal("schema init failed", zap.Error(err))
	}

	var locker service.UserLocker = service.NewLocalLocker()
	if config.GetEnv("REDIS_HOST", "") != "" {
		rdb := config.MustInitRedis(logger)
		defer rdb.Close()
		locker = storage.NewRedisLocker(rdb, config.GetDuration("CART_LOCK_TTL", defaultLockTTL), logger)
	}

	opts := []service.OrderServiceOption{
		service.WithLocker(locker),
		service.WithLogger(logger),
		service.WithQRGenerator(service.DefaultQRGenerator{
			BaseURL: config.GetEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		}),
	}
	if config.GetEnv("KAFKA_BROKER", "") != "" {
		writer := config.NewKafkaWriter(config.GetEnv("ORDER_EVENTS_TOPIC", "orders"))
		defer writer.Close()
		opts = append(opts, service.WithEvents(storage.NewKafkaPublisher(writer)))
	}

	httpClient := &http.Client{Timeout: config.GetDuration("UPSTREAM_TIMEOUT", defaultUpstreamTimeout)}
	identity := clients.NewIdentityClient(config.GetEnv("USER_SVC_URL", "http://localhost:8084"), httpClient)
	catalog := clients.NewCatalogClient(config.GetEnv("RESTAURANT_SVC_URL", "http://localhost:8081"), httpClient)

	carts := storage.NewCartRepository(db)
	orders := storage.NewOrderRepository(db)

	cartSvc := service.NewCartService(carts, identity, catalog, locker, logger)
	orderSvc := service.NewOrderService(orders, carts, identity, catalog, opts...)

	handler := httpapi.NewHandler(cartSvc, orderSvc, logger)
	addr := ":" + config.GetEnv("PORT", "8085")
	if err := config.RunServer(ctx, addr, httpapi.NewRouter(handler), logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
