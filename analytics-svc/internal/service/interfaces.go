package service

import (
	"context"
	"time"

	"food-platform/analytics-svc/internal/domain"
	"food-platform/analytics-svc/internal/storage"
)

type NameResolver interface {
	Names(ctx context.Context, ids []int) (map[int]string, error)
}

type AnalyticsInterface interface {
	GlobalStats(ctx context.Context) (domain.OrderStats, error)
	RestaurantStats(ctx context.Context, restaurantID int) (domain.OrderStats, error)
	TopRestaurants(ctx context.Context, day time.Time, limit int) ([]domain.RankedRestaurant, error)
	TopToday(ctx context.Context, limit int) ([]domain.RankedRestaurant, error)
}

var (
	_ AnalyticsInterface = (*AnalyticsService)(nil)
	_ NameResolver       = (*storage.RestaurantNames)(nil)
)
