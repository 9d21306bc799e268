package main

import (
	"context"

	"food-platform/agg-svc/internal/service"
	"food-platform/agg-svc/internal/storage"
	"food-platform/config"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	logger := config.NewLogger("agg-svc")
	defer logger.Sync()

	ctx, stop := config.SignalContext()
	defer stop()

	db := config.MustInitPostgres("postgres", logger)
	defer db.Close()
	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		logger.Fatal("schema init failed", zap.Error(err))
	}

	rdb := config.MustInitRedis(logger)
	defer rdb.Close()

	reader := config.NewKafkaReader(config.GetEnv("ORDER_EVENTS_TOPIC", "orders"), "agg-svc")
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(db, rdb), logger)
	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
	logger.Info("consumer stopped")
}
