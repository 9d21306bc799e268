package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"food-platform/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	GlobalStatsKey = "stats:global"
	dailyTTL       = 7 * 24 * time.Hour
)

func RestaurantStatsKey(restaurantID int) string {
	return fmt.Sprintf("stats:restaurant:%d", restaurantID)
}

func DailyOrdersKey(day time.Time) string {
	return "analytics:daily:" + day.UTC().Format("2006-01-02")
}

const schema = `
CREATE TABLE IF NOT EXISTS processed_order_events (
	order_id     INTEGER NOT NULL,
	event_type   VARCHAR(32) NOT NULL,
	processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (order_id, event_type)
);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

type Store struct {
	db  *sql.DB
	rdb *redis.Client
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{db: db, rdb: rdb}
}

// MarkProcessed records the event and reports whether it was seen for the
// first time. Kafka delivers at least once.
func (s *Store) MarkProcessed(ctx context.Context, event domain.OrderEvent) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO processed_order_events (order_id, event_type)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, event.OrderID, event.Type)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// UnmarkProcessed forgets the event so a redelivery is applied again.
func (s *Store) UnmarkProcessed(ctx context.Context, event domain.OrderEvent) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM processed_order_events
		WHERE order_id = $1 AND event_type = $2`, event.OrderID, event.Type)
	return err
}

func (s *Store) ApplyEvent(ctx context.Context, event domain.OrderEvent) error {
	restaurantKey := RestaurantStatsKey(event.RestaurantID)
	cents := event.Cents()

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range []string{restaurantKey, GlobalStatsKey} {
			switch event.Type {
			case domain.EventOrderCreated:
				pipe.HIncrBy(ctx, key, "created", 1)
				pipe.HIncrBy(ctx, key, "revenue_cents", cents)
			case domain.EventOrderCanceled:
				pipe.HIncrBy(ctx, key, "canceled", 1)
				pipe.HIncrBy(ctx, key, "revenue_cents", -cents)
			case domain.EventOrderCompleted:
				pipe.HIncrBy(ctx, key, "completed", 1)
			}
			pipe.HSet(ctx, key, "last_updated", event.Timestamp.Unix())
		}

		if event.Type == domain.EventOrderCreated {
			dailyKey := DailyOrdersKey(event.Timestamp)
			pipe.ZIncrBy(ctx, dailyKey, 1, strconv.Itoa(event.RestaurantID))
			pipe.Expire(ctx, dailyKey, dailyTTL)
		}
		return nil
	})
	return err
}
