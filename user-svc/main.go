package main

import (
	"context"
	"time"

	"food-platform/config"
	httpapi "food-platform/user-svc/internal/api/http"
	"food-platform/user-svc/internal/service"
	"food-platform/user-svc/internal/storage"

	"go.uber.org/zap"
)

const defaultTokenTTL = 72 * time.Hour

func main() {
	config.LoadEnv()
	logger := config.NewLogger("user-svc")
	defer logger.Sync()

	ctx, stop := config.SignalContext()
	defer stop()

	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	db := config.MustInitPostgres("pgx", logger)
	defer db.Close()
	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		logger.Fatal("schema init failed", zap.Error(err))
	}

	repo := storage.NewPostgresRepository(db)
	tokens := service.NewTokenIssuer(secret, config.GetDuration("JWT_TTL", defaultTokenTTL))
	users := service.NewUserService(repo, repo, tokens, logger)

	handler := httpapi.NewHandler(users, tokens, logger)
	addr := ":" + config.GetEnv("PORT", "8084")
	if err := config.RunServer(ctx, addr, httpapi.NewRouter(handler), logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
