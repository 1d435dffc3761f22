package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotHeld is returned by Release when the lock expired and was taken
// by another request, so nothing was deleted.
var ErrLockNotHeld = errors.New("cache: submission lock no longer held")

// releaseScript deletes KEYS[1] only while it still holds ARGV[1].
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmissionLock serializes booking submissions that share an idempotency key.
// It only guards against concurrent in-flight duplicates; the database's
// unique constraint is what makes a replay return the original booking.
type SubmissionLock struct {
	rdb      *redis.Client
	ttl      time.Duration
	newToken func() string
}

// NewSubmissionLock returns a lock whose entries expire after ttl, so a
// crashed request never blocks a key forever.
func NewSubmissionLock(rdb *redis.Client, ttl time.Duration) *SubmissionLock {
	return &SubmissionLock{rdb: rdb, ttl: ttl, newToken: uuid.NewString}
}

// Acquire takes the lock for (customerID, key) and returns the token that
// identifies this holder. ok is false if another request holds it.
func (l *SubmissionLock) Acquire(ctx context.Context, customerID, key string) (token string, ok bool, err error) {
	token = l.newToken()
	ok, err = l.rdb.SetNX(ctx, KeySubmission(customerID, key), token, l.ttl).Result()
	if err != nil || !ok {
		return "", ok, err
	}
	return token, true, nil
}

// Release drops the lock for (customerID, key) if token still holds it.
func (l *SubmissionLock) Release(ctx context.Context, customerID, key, token string) error {
	n, err := releaseScript.Run(ctx, l.rdb, []string{KeySubmission(customerID, key)}, token).Int64()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}
