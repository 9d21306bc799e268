package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const DefaultLockWait = 10 * time.Second

// LocalLocker is an in-process UserLocker for single-instance deployments.
// A waiter gives up with ErrCartBusy after WaitTimeout.
type LocalLocker struct {
	WaitTimeout time.Duration

	mu    sync.Mutex
	locks map[int]*userLock
}

type userLock struct {
	sem  chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		WaitTimeout: DefaultLockWait,
		locks:       make(map[int]*userLock),
	}
}

func (l *LocalLocker) Lock(ctx context.Context, userID int) (func(), error) {
	if l.WaitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.WaitTimeout)
		defer cancel()
	}

	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{sem: make(chan struct{}, 1)}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	select {
	case ul.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-ul.sem
				l.release(userID, ul)
			})
		}, nil
	case <-ctx.Done():
		l.release(userID, ul)
		return nil, fmt.Errorf("%w: %w", ErrCartBusy, ctx.Err())
	}
}

func (l *LocalLocker) release(userID int, ul *userLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ul.refs--
	if ul.refs == 0 {
		delete(l.locks, userID)
	}
}
