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

type listing struct {
	Name     string `json:"name"`
	Enrolled int    `json:"enrolled"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb), mr
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var out []listing
	hit, err := c.GetJSON(ctx, KeyClassesPopular, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	in := []listing{{Name: "Spanish A1", Enrolled: 30}}
	require.NoError(t, c.SetJSON(ctx, KeyClassesPopular, in, time.Minute))

	hit, err = c.GetJSON(ctx, KeyClassesPopular, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)
}

func TestRedisCache_TTLExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, KeyInstructors, []listing{{Name: "x"}}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var out []listing
	hit, err := c.GetJSON(ctx, KeyInstructors, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_CorruptValueIsAMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(KeyClassesUser, "{not json"))

	var out []listing
	hit, err := c.GetJSON(ctx, KeyClassesUser, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists(KeyClassesUser))
}

func TestRedisCache_Del(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, KeyClassesUser, 1, time.Minute))
	require.NoError(t, c.SetJSON(ctx, KeyClassesPopular, 2, time.Minute))
	require.NoError(t, c.Del(ctx, KeyClassesUser, KeyClassesPopular))
	assert.False(t, mr.Exists(KeyClassesUser))
	assert.False(t, mr.Exists(KeyClassesPopular))
	assert.NoError(t, c.Del(ctx))
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", 1, time.Minute))
	hit, err := c.GetJSON(ctx, "k", new(int))
	assert.NoError(t, err)
	assert.False(t, hit)
}
