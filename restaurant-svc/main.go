package main

import (
	"context"

	"food-platform/config"
	httpapi "food-platform/restaurant-svc/internal/api/http"
	"food-platform/restaurant-svc/internal/service"
	"food-platform/restaurant-svc/internal/storage"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	logger := config.NewLogger("restaurant-svc")
	defer logger.Sync()

	ctx, stop := config.SignalContext()
	defer stop()

	db := config.MustInitPostgres("postgres", logger)
	defer db.Close()
	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		logger.Fatal("schema init failed", zap.Error(err))
	}

	repo := storage.NewPostgresRepository(db)
	restSvc := service.NewRestaurantService(repo, logger)
	menuSvc := service.NewMenuService(repo, repo, repo, logger)

	handler := httpapi.NewHandler(restSvc, menuSvc, logger)
	addr := ":" + config.GetEnv("PORT", "8081")
	if err := config.RunServer(ctx, addr, httpapi.NewRouter(handler), logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
