// Package testutils provides shared test helpers: miniredis-backed clients,
// deterministic dice rollers and fixtures.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-clash/internal/redis"
)

// CreateTestRedisClient creates an in-memory Redis client for testing
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	client, mr := CreateTestRedisClientWithServer(t)
	return client, mr.Close
}

// CreateTestRedisClientWithServer also returns the miniredis server so tests
// can inspect keys or fast-forward TTLs.
func CreateTestRedisClientWithServer(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}
