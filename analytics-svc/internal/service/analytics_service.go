package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"food-platform/analytics-svc/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Keys written by agg-svc.
const globalStatsKey = "stats:global"

func restaurantStatsKey(restaurantID int) string {
	return fmt.Sprintf("stats:restaurant:%d", restaurantID)
}

func dailyOrdersKey(day time.Time) string {
	return "analytics:daily:" + day.UTC().Format("2006-01-02")
}

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

type AnalyticsService struct {
	rdb    *redis.Client
	names  NameResolver
	logger *zap.Logger
	now    func() time.Time
}

func NewAnalyticsService(rdb *redis.Client, names NameResolver, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{rdb: rdb, names: names, logger: logger, now: time.Now}
}

// WithClock overrides the clock used for "today".
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

func (s *AnalyticsService) GlobalStats(ctx context.Context) (domain.OrderStats, error) {
	return s.readStats(ctx, globalStatsKey)
}

func (s *AnalyticsService) RestaurantStats(ctx context.Context, restaurantID int) (domain.OrderStats, error) {
	stats, err := s.readStats(ctx, restaurantStatsKey(restaurantID))
	stats.RestaurantID = restaurantID
	return stats, err
}

func (s *AnalyticsService) readStats(ctx context.Context, key string) (domain.OrderStats, error) {
	raw, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return domain.OrderStats{Revenue: decimal.Zero}, err
	}

	parse := func(field string) int64 {
		n, _ := strconv.ParseInt(raw[field], 10, 64)
		return n
	}
	stats := domain.OrderStats{
		Created:     parse("created"),
		Canceled:    parse("canceled"),
		Completed:   parse("completed"),
		Revenue:     decimal.New(parse("revenue_cents"), -2),
		LastUpdated: parse("last_updated"),
	}
	stats.Pending = stats.Created - stats.Canceled - stats.Completed
	if stats.Pending < 0 {
		stats.Pending = 0
	}
	return stats, nil
}

func (s *AnalyticsService) TopToday(ctx context.Context, limit int) ([]domain.RankedRestaurant, error) {
	return s.TopRestaurants(ctx, s.now(), limit)
}

// TopRestaurants ranks restaurants by orders created on day.
func (s *AnalyticsService) TopRestaurants(ctx context.Context, day time.Time, limit int) ([]domain.RankedRestaurant, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	entries, err := s.rdb.ZRevRangeWithScores(ctx, dailyOrdersKey(day), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedRestaurant, 0, len(entries))
	ids := make([]int, 0, len(entries))
	for _, entry := range entries {
		member, _ := entry.Member.(string)
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		ranked = append(ranked, domain.RankedRestaurant{RestaurantID: id, Orders: int64(entry.Score)})
		ids = append(ids, id)
	}

	if s.names != nil && len(ids) > 0 {
		names, err := s.names.Names(ctx, ids)
		if err != nil {
			s.logger.Warn("restaurant name lookup failed", zap.Error(err))
			return ranked, nil
		}
		for i := range ranked {
			ranked[i].Name = names[ranked[i].RestaurantID]
		}
	}
	return ranked, nil
}
