// Package redisx holds the Redis client and the distributed admission lock
// used when the service runs as more than one instance. A single instance
// gets the same serialization from the in-process keyed mutex.
package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

const (
	// admit:lock:{resource_id} -> holder token
	keyAdmitLock = "admit:lock:%s"

	lockTTL       = 10 * time.Second
	retryInterval = 50 * time.Millisecond
)

// compare-and-delete so a holder never releases someone else's lock after
// its own TTL already fired.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Lock is a per-resource SET NX PX lock covering the availability check and
// the reservation create across instances.
type Lock struct {
	rdb *redis.Client
}

func NewLock(rdb *redis.Client) *Lock {
	return &Lock{rdb: rdb}
}

func (l *Lock) Lock(ctx context.Context, resourceID string) (func(), error) {
	key := fmt.Sprintf(keyAdmitLock, resourceID)
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire admission lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	unlock := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, _ = unlockScript.Run(releaseCtx, l.rdb, []string{key}, token).Result()
	}
	return unlock, nil
}
