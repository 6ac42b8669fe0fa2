//go:build integration

package authflowrepo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-sheets-sdk/server/authflowrepo"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisRepo(t *testing.T) *authflowrepo.RedisRepo {
	t.Helper()

	addr := os.Getenv("SHEETS_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err(), "failed to connect to Redis")
	t.Cleanup(func() { _ = client.Close() })

	return authflowrepo.NewRedisRepo(client, "test:"+uuid.NewString()+":")
}

func TestRedisRepo_PutTake(t *testing.T) {
	repo := newTestRedisRepo(t)
	ctx := context.Background()

	in := &authflowrepo.AuthFlowState{
		State:     "state-1",
		Scopes:    []string{"READ_SHEETS", "READ_USERS"},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Put(ctx, "session-1", in, time.Minute))

	got, err := repo.Take(ctx, "session-1")
	require.NoError(t, err)
	require.Equal(t, in, got)

	_, err = repo.Take(ctx, "session-1")
	require.ErrorIs(t, err, authflowrepo.ErrNotFound)
}

func TestRedisRepo_Expiry(t *testing.T) {
	repo := newTestRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "short", &authflowrepo.AuthFlowState{State: "a"}, 50*time.Millisecond))
	time.Sleep(200 * time.Millisecond)

	_, err := repo.Take(ctx, "short")
	require.ErrorIs(t, err, authflowrepo.ErrNotFound)
}

func TestRedisRepo_Delete(t *testing.T) {
	repo := newTestRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "k", &authflowrepo.AuthFlowState{State: "s"}, time.Minute))
	require.NoError(t, repo.Delete(ctx, "k"))

	_, err := repo.Take(ctx, "k")
	require.ErrorIs(t, err, authflowrepo.ErrNotFound)
}
