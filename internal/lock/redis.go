package lock

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	DefaultLeaseTTL = 10 * time.Second
	defaultRetry    = 50 * time.Millisecond
	keyPrefix       = "ledger:lock:"
)

// Deletes the lease only if it is still held by the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker serializes across processes with a leased key (SET NX PX).
// A holder that outlives the TTL loses the lease.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultLeaseTTL
	}
	return &RedisLocker{client: client, ttl: ttl, retry: defaultRetry}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	leaseKey := keyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, leaseKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lease %s: %w", key, err)
		}
		if ok {
			return l.unlocker(leaseKey, token), nil
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) unlocker(leaseKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() { l.release(leaseKey, token) })
	}
}

func (l *RedisLocker) release(leaseKey, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{leaseKey}, token).Err(); err != nil && err != redis.Nil {
		log.Printf("[Lock] failed to release lease %s: %v", leaseKey, err)
	}
}
