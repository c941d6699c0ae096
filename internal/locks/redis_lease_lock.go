package locks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

const (
	DefaultLease = 30 * time.Second
	retryDelay   = 50 * time.Millisecond
)

var ErrLockLost = errors.New("writer lock lease expired before release")

// releaseScript deletes the key only while it still carries the caller's
// owner value.
var releaseScript = rueidis.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLeaseLock is a writer lock shared by every process using the same
// redis key. Holding it means owning a key set with NX and a lease, so a
// holder that dies frees the lock once the lease runs out.
type RedisLeaseLock struct {
	client  rueidis.Client
	key     string
	timeout time.Duration
	lease   time.Duration

	mu    sync.Mutex
	owner string
}

func NewRedisLeaseLock(client rueidis.Client, key string, timeout, lease time.Duration) *RedisLeaseLock {
	return &RedisLeaseLock{
		client:  client,
		key:     key,
		timeout: timeout,
		lease:   lease,
	}
}

func (r *RedisLeaseLock) Acquire(ctx context.Context) error {
	owner := uuid.NewString()
	deadline := time.NewTimer(r.timeout)
	defer deadline.Stop()

	for {
		cmd := r.client.B().Set().Key(r.key).Value(owner).Nx().PxMilliseconds(r.lease.Milliseconds()).Build()
		err := r.client.Do(ctx, cmd).Error()
		if err == nil {
			r.mu.Lock()
			r.owner = owner
			r.mu.Unlock()
			return nil
		}
		if !rueidis.IsRedisNil(err) {
			return err
		}

		select {
		case <-deadline.C:
			return ErrLockTimeout
		case <-ctx.Done():
			return ErrLockTimeout
		case <-time.After(retryDelay):
		}
	}
}

func (r *RedisLeaseLock) Release(ctx context.Context) error {
	r.mu.Lock()
	owner := r.owner
	r.owner = ""
	r.mu.Unlock()
	if owner == "" {
		return nil
	}

	deleted, err := releaseScript.Exec(ctx, r.client, []string{r.key}, []string{owner}).AsInt64()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrLockLost
	}
	return nil
}
