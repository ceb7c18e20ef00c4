package storage

import (
	"context"
	"sync"
	"time"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
)

const (
	lockTTL      = 5 * time.Second
	lockWaitStep = 50 * time.Millisecond
	lockWaitMax  = 2 * time.Second
)

var (
	localLocksMu sync.Mutex
	localLocks   = map[string]*sync.Mutex{}
)

// AcquireTargetLock serializes writers on a single target (a room, service
// or offer target). When Redis is configured the lock is a SETNX key with a
// TTL so that a crashed holder cannot block the target forever; without
// Redis it degrades to an in-process mutex, which is enough for a single
// node and for tests.
//
// The returned release func must be called exactly once.
func AcquireTargetLock(ctx context.Context, key string) (func(), error) {
	if Redis == nil {
		localLocksMu.Lock()
		mu, ok := localLocks[key]
		if !ok {
			mu = &sync.Mutex{}
			localLocks[key] = mu
		}
		localLocksMu.Unlock()

		mu.Lock()
		return mu.Unlock, nil
	}

	deadline := time.Now().Add(lockWaitMax)
	for {
		ok, err := Redis.SetNX(ctx, "lock:"+key, "1", lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			// Release with a fresh context: the request may already be
			// cancelled by the time the caller unlocks, and a failed Del
			// would hold the target for the full TTL.
			return func() { Redis.Del(context.Background(), "lock:"+key) }, nil
		}
		if time.Now().After(deadline) {
			return nil, models.ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockWaitStep):
		}
	}
}
