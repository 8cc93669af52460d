package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCmdable struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.failGet != nil {
		return redis.NewStringResult("", m.failGet)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

type entry struct {
	Name string `json:"name"`
}

func TestRedisCache_FillThenGet(t *testing.T) {
	store := newMockCmdable()
	c := &RedisCache{store: store, ttl: time.Minute}
	ctx := context.Background()

	var got []entry
	slot, found, err := c.Get(ctx, "products:all", &got)
	require.NoError(t, err)
	require.False(t, found)
	assert.Equal(t, "cw:catalog:0:products:all", slot)

	require.NoError(t, c.Set(ctx, slot, []entry{{Name: "Evaporator"}}))

	_, found, err = c.Get(ctx, "products:all", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []entry{{Name: "Evaporator"}}, got)
	assert.Equal(t, time.Minute, store.ttls["cw:catalog:0:products:all"])
}

func TestRedisCache_Miss(t *testing.T) {
	c := &RedisCache{store: newMockCmdable(), ttl: time.Minute}

	var got []entry
	_, found, err := c.Get(context.Background(), "products:all", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_InvalidateHidesOldEntries(t *testing.T) {
	c := &RedisCache{store: newMockCmdable(), ttl: time.Minute}
	ctx := context.Background()

	var got entry
	slot, _, err := c.Get(ctx, "product:p-1", &got)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, slot, entry{Name: "old"}))
	require.NoError(t, c.Invalidate(ctx))

	_, found, err := c.Get(ctx, "product:p-1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_FillAfterInvalidateLandsInRetiredGeneration(t *testing.T) {
	store := newMockCmdable()
	c := &RedisCache{store: store, ttl: time.Minute}
	ctx := context.Background()

	var got entry
	slot, found, err := c.Get(ctx, "products::", &got)
	require.NoError(t, err)
	require.False(t, found)

	// a catalog write commits while the read is still loading rows
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, slot, entry{Name: "stale"}))

	got = entry{}
	_, found, err = c.Get(ctx, "products::", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, got.Name)
	assert.Contains(t, store.data, "cw:catalog:0:products::")
}

func TestRedisCache_GetError(t *testing.T) {
	store := newMockCmdable()
	store.failGet = errors.New("connection refused")
	c := &RedisCache{store: store, ttl: time.Minute}

	var got entry
	_, found, err := c.Get(context.Background(), "product:p-1", &got)
	assert.Error(t, err)
	assert.False(t, found)
}
