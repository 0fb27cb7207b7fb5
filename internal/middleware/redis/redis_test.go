package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	s := NewStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	require.NoError(t, s.Ping(ctx))
	assert.Nil(t, s.Get(ctx, "/v1/overview"))

	s.Set(ctx, "/v1/overview", []byte(`{"a":1}`), time.Minute)
	assert.Equal(t, []byte(`{"a":1}`), s.Get(ctx, "/v1/overview"))
	assert.True(t, mr.Exists(keyPrefix+"/v1/overview"))

	mr.FastForward(time.Minute)
	assert.Nil(t, s.Get(ctx, "/v1/overview"))
}

func TestStorage_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	ctx := context.Background()
	s := NewStorage(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}))
	mr.Close()

	assert.Error(t, s.Ping(ctx))
	assert.Nil(t, s.Get(ctx, "key"))
	s.Set(ctx, "key", []byte("value"), time.Minute)
}
