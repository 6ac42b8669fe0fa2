package authflowrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces auth flow keys in a shared Redis.
const DefaultKeyPrefix = "sheets:authflow:"

// RedisRepo stores auth flow state in Redis so that any server replica can
// complete a callback. Expiry is left to Redis.
type RedisRepo struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRepo creates a Redis-backed repository. The client lifecycle stays
// with the caller.
func NewRedisRepo(client redis.UniversalClient, prefix string) *RedisRepo {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisRepo{client: client, prefix: prefix}
}

// Put stores authState under key. A non-positive ttl never expires.
func (r *RedisRepo) Put(ctx context.Context, key string, authState *AuthFlowState, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if authState == nil {
		return ErrNilState
	}

	data, err := json.Marshal(authState)
	if err != nil {
		return fmt.Errorf("authflowrepo: marshal state: %w", err)
	}
	return r.client.Set(ctx, r.prefix+key, data, max(ttl, 0)).Err()
}

// Take atomically reads and deletes the state for key with GETDEL.
func (r *RedisRepo) Take(ctx context.Context, key string) (*AuthFlowState, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	data, err := r.client.GetDel(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var state AuthFlowState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("authflowrepo: unmarshal state: %w", err)
	}
	return &state, nil
}

func (r *RedisRepo) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return r.client.Del(ctx, r.prefix+key).Err()
}
