package ports

import (
	"context"
	"time"
)

// PassLock keeps two scheduling passes from running at the same time across replicas.
type PassLock interface {
	// TryAcquire returns acquired=false without error when another holder
	// owns name. The returned release func is nil unless acquired.
	TryAcquire(ctx context.Context, name string, ttl time.Duration) (release func(context.Context) error, acquired bool, err error)
}
