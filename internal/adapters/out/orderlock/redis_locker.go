package orderlock

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/google/uuid"
	radix "github.com/mediocregopher/radix/v3"
)

const keyPrefix = "storefront:order-lock:"

// releaseScript deletes the key only while it still holds our token, so an
// expired lock that someone else re-acquired is never released by us.
var releaseScript = radix.NewEvalScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements ports.OrderLocker with SET NX PX. The TTL bounds how
// long a crashed holder can block an order.
type RedisLocker struct {
	client radix.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

func NewRedisLocker(client radix.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		retry:  25 * time.Millisecond,
	}
}

// Lock polls until the key is free, wait elapses (ports.ErrOrderLocked) or ctx
// is done.
func (l *RedisLocker) Lock(ctx context.Context, orderID kernel.UUID) (func(), error) {
	key := keyPrefix + orderID.String()
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		acquired, err := l.tryAcquire(key, token)
		if err != nil {
			return nil, fmt.Errorf("acquire lock for order %s: %w", orderID, err)
		}
		if acquired {
			return func() {
				_ = l.client.Do(releaseScript.Cmd(nil, key, token))
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, ports.ErrOrderLocked
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

func (l *RedisLocker) tryAcquire(key, token string) (bool, error) {
	var reply string
	mn := radix.MaybeNil{Rcv: &reply}
	if err := l.client.Do(radix.FlatCmd(&mn, "SET", key, token, "NX", "PX", l.ttl.Milliseconds())); err != nil {
		return false, err
	}
	return !mn.Nil, nil
}
