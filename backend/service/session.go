package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionTTL is the fixed lifetime of a session. Lookups never extend it.
const SessionTTL = 24 * time.Hour

const sessionPrefix = "auth_"

// SessionStore maps opaque bearer tokens to user ids in the expiring cache.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Create mints a random token for userID, valid for SessionTTL.
func (s *SessionStore) Create(ctx context.Context, userID uint64) (string, error) {
	token := uuid.New().String()
	err := s.rdb.Set(ctx, sessionPrefix+token, strconv.FormatUint(userID, 10), SessionTTL).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user id behind a token. Unknown or expired tokens read
// as absent; a cache failure is an error, never an identity (fail closed).
func (s *SessionStore) Resolve(ctx context.Context, token string) (uint64, bool, error) {
	val, err := s.rdb.Get(ctx, sessionPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return userID, true, nil
}

// Revoke deletes the token. Revoking an absent token is a no-op.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionPrefix+token).Err()
}
