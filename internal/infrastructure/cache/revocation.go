// Package cache holds the Redis-backed pieces of the API.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/todo-api/internal/application"
)

func revokedKey(userID int64) string {
	return "user:revoked:" + strconv.FormatInt(userID, 10)
}

// RevocationStore keeps, per user, the unix second before which issued
// tokens are rejected. Keys expire after the access token TTL since no
// older token can still be valid by then.
type RevocationStore struct {
	Redis *redis.Client
	TTL   time.Duration
	now   func() time.Time
}

func NewRevocationStore(rdb *redis.Client, ttl time.Duration) *RevocationStore {
	return &RevocationStore{Redis: rdb, TTL: ttl, now: time.Now}
}

func (s *RevocationStore) Revoke(ctx context.Context, userID int64) error {
	return s.Redis.Set(ctx, revokedKey(userID), s.now().Unix(), s.TTL).Err()
}

func (s *RevocationStore) RevokedSince(ctx context.Context, userID int64) (time.Time, bool, error) {
	sec, err := s.Redis.Get(ctx, revokedKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(sec, 0), true, nil
}

var _ application.TokenRevoker = (*RevocationStore)(nil)
