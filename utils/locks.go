// File: utils/locks.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Every step of a reservation's assembly sequence mutates state the engine
// holds authoritatively, so mutating calls for the same reservation must
// never overlap, even across replicas. A Redis lock keyed by reservation id
// gives each mutation exclusive access; the TTL bounds a crashed holder.

const reservationLockTTL = 30 * time.Second

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReservationLock is a held per-reservation lock. Release it when the
// mutation round completes.
type ReservationLock struct {
	key    string
	token  string
	client *redis.Client
}

// AcquireReservationLock takes the mutation lock for the given reservation id.
// It fails immediately when another worker holds the lock rather than
// queueing, so callers surface contention instead of stacking stale rounds.
func AcquireReservationLock(ctx context.Context, reservationID string) (*ReservationLock, error) {
	client := GetLockClient()
	key := "reservation-lock:" + reservationID
	token := uuid.New().String()

	ok, err := client.SetNX(ctx, key, token, reservationLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire reservation lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("reservation %s is already being processed", reservationID)
	}
	return &ReservationLock{key: key, token: token, client: client}, nil
}

// Release frees the lock. Only the holder's token can delete the key, so a
// lock that expired and was re-acquired elsewhere is left alone.
func (l *ReservationLock) Release(ctx context.Context) {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil && err != redis.Nil {
		GetLogger().Sugar().Warnf("failed to release reservation lock %s: %v", l.key, err)
	}
}
