// Package redis holds the Redis-backed scheduler pass lock.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "production:lock:"

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var ErrLockLost = errors.New("pass lock expired before release")

// PassLock implements ports.PassLock with SET NX PX and a random token.
type PassLock struct {
	client *redis.Client
}

func NewPassLock(client *redis.Client) *PassLock {
	return &PassLock{client: client}
}

func (l *PassLock) TryAcquire(
	ctx context.Context,
	name string,
	ttl time.Duration,
) (func(context.Context) error, bool, error) {
	if name == "" {
		return nil, false, errs.NewValueIsRequiredError("name")
	}
	if ttl <= 0 {
		return nil, false, errs.NewValueIsOutOfRangeError("ttl", ttl, time.Millisecond, "unbounded")
	}

	key := keyPrefix + name
	token := kernel.NewUUID().String()

	acquired, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !acquired {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		deleted, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
		if err != nil {
			return fmt.Errorf("release %s: %w", key, err)
		}
		if deleted == 0 {
			return ErrLockLost
		}
		return nil
	}

	return release, true, nil
}
