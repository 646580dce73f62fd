package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// StartRedis runs an in-memory Redis server for the length of the test.
//
//	mini := testutil.StartRedis(t)
//	cfg := redis.Config{Enabled: true, Addr: mini.Addr()}
func StartRedis(t testing.TB) *miniredis.Miniredis {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)
	return mini
}
