package main

import (
	httpapi "food-platform/analytics-svc/internal/api/http"
	"food-platform/analytics-svc/internal/service"
	"food-platform/analytics-svc/internal/storage"
	"food-platform/config"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	logger := config.NewLogger("analytics-svc")
	defer logger.Sync()

	ctx, stop := config.SignalContext()
	defer stop()

	rdb := config.MustInitRedis(logger)
	defer rdb.Close()

	var names service.NameResolver
	if config.GetEnv("DB_HOST", "") != "" {
		db := config.MustInitPostgres("postgres", logger)
		defer db.Close()
		names = storage.NewRestaurantNames(db)
	}

	svc := service.NewAnalyticsService(rdb, names, logger)
	handler := httpapi.NewHandler(svc, logger)

	addr := ":" + config.GetEnv("PORT", "8083")
	if err := config.RunServer(ctx, addr, httpapi.NewRouter(handler), logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
