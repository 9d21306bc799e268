package storage

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"food-platform/order-svc/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker is a UserLocker shared by every order-svc replica. A held lock
// is extended every TTL/3 until released; a crashed holder's lock expires
// after TTL.
type RedisLocker struct {
	Client        *redis.Client
	TTL           time.Duration
	RetryInterval time.Duration
	WaitTimeout   time.Duration
	Logger        *zap.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{
		Client:        client,
		TTL:           ttl,
		RetryInterval: 25 * time.Millisecond,
		WaitTimeout:   ttl,
		Logger:        logger,
	}
}

func (l *RedisLocker) LockKey(userID int) string {
	return "cart:lock:" + strconv.Itoa(userID)
}

func (l *RedisLocker) Lock(ctx context.Context, userID int) (func(), error) {
	key := l.LockKey(userID)
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, l.WaitTimeout)
	defer cancel()

	ticker := time.NewTicker(l.RetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err == nil && ok {
			break
		}
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("failed to acquire cart lock: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", service.ErrCartBusy, ctx.Err())
		case <-ticker.C:
		}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(key, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			n, err := releaseScript.Run(context.Background(), l.Client, []string{key}, token).Int()
			switch {
			case err != nil:
				l.Logger.Error("failed to release cart lock", zap.String("key", key), zap.Error(err))
			case n == 0:
				l.Logger.Warn("cart lock was no longer held at release", zap.String("key", key))
			}
		})
	}, nil
}

func (l *RedisLocker) keepAlive(key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := l.TTL / 3
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			n, err := extendScript.Run(context.Background(), l.Client, []string{key}, token, l.TTL.Milliseconds()).Int()
			if err != nil {
				l.Logger.Warn("failed to extend cart lock", zap.String("key", key), zap.Error(err))
				continue
			}
			if n == 0 {
				l.Logger.Error("cart lock lost while held", zap.String("key", key))
				return
			}
		}
	}
}
