package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"food-platform/agg-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultRetryBackoff = 500 * time.Millisecond
	defaultMaxBackoff   = 30 * time.Second
)

type Consumer struct {
	Reader       MessageReader
	Store        StoreInterface
	Logger       *zap.Logger
	RetryBackoff time.Duration
	MaxBackoff   time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		Reader:       reader,
		Store:        store,
		Logger:       logger,
		RetryBackoff: defaultRetryBackoff,
		MaxBackoff:   defaultMaxBackoff,
	}
}

// Start consumes until ctx is canceled. A message is committed once it has
// been applied or judged unprocessable. A failing message is retried until it
// succeeds; later messages wait behind it because commits are by offset.
func (c *Consumer) Start(ctx context.Context) error {
	c.Logger.Info("order event consumer started")
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.Logger.Error("failed to fetch message", zap.Error(err))
			continue
		}

		if !c.handleWithRetry(ctx, message) {
			return nil
		}

		if err := c.Reader.CommitMessages(ctx, message); err != nil && ctx.Err() == nil {
			c.Logger.Warn("failed to commit offset", zap.Int64("offset", message.Offset), zap.Error(err))
		}
	}
}

// handleWithRetry reports false when ctx ended before the message was handled.
func (c *Consumer) handleWithRetry(ctx context.Context, message kafka.Message) bool {
	backoff := c.RetryBackoff
	for attempt := 1; ; attempt++ {
		err := c.handle(ctx, message)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		c.Logger.Error("failed to process order event",
			zap.Int64("offset", message.Offset),
			zap.Int("partition", message.Partition),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
		if backoff *= 2; c.MaxBackoff > 0 && backoff > c.MaxBackoff {
			backoff = c.MaxBackoff
		}
	}
}

func (c *Consumer) handle(ctx context.Context, message kafka.Message) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		c.Logger.Warn("dropping malformed order event", zap.Int64("offset", message.Offset), zap.Error(err))
		return nil
	}
	return c.ProcessEvent(ctx, event)
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) error {
	if !event.Known() {
		c.Logger.Debug("skipping event", zap.String("type", event.Type))
		return nil
	}
	if event.OrderID <= 0 || event.RestaurantID <= 0 {
		c.Logger.Warn("dropping order event without ids", zap.String("type", event.Type))
		return nil
	}

	fresh, err := c.Store.MarkProcessed(ctx, event)
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	if !fresh {
		c.Logger.Info("duplicate order event ignored",
			zap.String("type", event.Type), zap.Int("order_id", event.OrderID))
		return nil
	}

	if err := c.Store.ApplyEvent(ctx, event); err != nil {
		if uerr := c.Store.UnmarkProcessed(ctx, event); uerr != nil {
			c.Logger.Error("failed to release processed marker",
				zap.String("type", event.Type), zap.Int("order_id", event.OrderID), zap.Error(uerr))
		}
		return fmt.Errorf("apply %s for order %d: %w", event.Type, event.OrderID, err)
	}

	c.Logger.Info("order event aggregated",
		zap.String("type", event.Type),
		zap.Int("order_id", event.OrderID),
		zap.Int("restaurant_id", event.RestaurantID),
	)
	return nil
}
