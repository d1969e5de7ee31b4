package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newThrottle(t *testing.T, max int, window time.Duration) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, max, window), mr
}

func TestLoginThrottle_BloqueaTrasMaxIntentos(t *testing.T) {
	th, _ := newThrottle(t, 3, time.Minute)
	ctx := context.Background()
	key := "a@x.com|10.0.0.1"

	for i := 0; i < 2; i++ {
		require.NoError(t, th.RegisterFailure(ctx, key))
		blocked, _, err := th.Blocked(ctx, key)
		require.NoError(t, err)
		assert.False(t, blocked)
	}
	require.NoError(t, th.RegisterFailure(ctx, key))

	blocked, retry, err := th.Blocked(ctx, key)
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Greater(t, retry, time.Duration(0))
	assert.LessOrEqual(t, retry, time.Minute)
}

func TestLoginThrottle_VentanaExpira(t *testing.T) {
	th, mr := newThrottle(t, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, th.RegisterFailure(ctx, "k"))
	blocked, _, err := th.Blocked(ctx, "k")
	require.NoError(t, err)
	assert.True(t, blocked)

	mr.FastForward(2 * time.Minute)
	blocked, _, err = th.Blocked(ctx, "k")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLoginThrottle_ResetYClaveNormalizada(t *testing.T) {
	th, _ := newThrottle(t, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, th.RegisterFailure(ctx, "  A@X.com "))
	blocked, _, err := th.Blocked(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, blocked)

	require.NoError(t, th.Reset(ctx, "a@x.com"))
	blocked, _, err = th.Blocked(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.NoError(t, th.Ping(ctx))
}
