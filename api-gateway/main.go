package main

import (
	"net/http"
	"time"

	"food-platform/api-gateway/internal/gateway"
	"food-platform/config"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

const defaultUpstreamTimeout = 15 * time.Second

func main() {
	config.LoadEnv()
	logger := config.NewLogger("api-gateway")
	defer logger.Sync()

	ctx, stop := config.SignalContext()
	defer stop()

	cfg := gateway.Config{
		UserSvcURL:       config.GetEnv("USER_SVC_URL", "http://localhost:8084"),
		RestaurantSvcURL: config.GetEnv("RESTAURANT_SVC_URL", "http://localhost:8081"),
		OrderSvcURL:      config.GetEnv("ORDER_SVC_URL", "http://localhost:8085"),
		AnalyticsSvcURL:  config.GetEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
	}

	client := &http.Client{Timeout: config.GetDuration("UPSTREAM_TIMEOUT", defaultUpstreamTimeout)}
	gw := gateway.NewGateway(cfg, client, logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := ":" + config.GetEnv("PORT", "8080")
	if err := config.RunServer(ctx, addr, c.Handler(gw.SetupRoutes()), logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
