package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetDel(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "session:a:cart", []byte(`[]`), 0))
	val, ok, err := store.Get(ctx, "session:a:cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(val))

	require.NoError(t, store.Del(ctx, "session:a:cart"))
	_, ok, err = store.Get(ctx, "session:a:cart")
	require.NoError(t, err)
	assert.False(t, ok)

	// 删除不存在的键不报错
	require.NoError(t, store.Del(ctx, "session:a:cart"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "nonce", []byte("1"), time.Minute))
	assert.Equal(t, 1, store.Len())

	now = now.Add(2 * time.Minute)
	_, ok, err := store.Get(ctx, "nonce")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreTakeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "nonce:abc", []byte("pending"), time.Minute))

	val, ok, err := store.Take(ctx, "nonce:abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "pending", string(val))

	_, ok, err = store.Take(ctx, "nonce:abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	payload := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", payload, 0))
	payload[0] = 'x'

	val, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(val))
}

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "mdc:cart", joinKey("mdc", "cart"))
	assert.Equal(t, "mdc", joinKey("mdc", "  "))
	assert.Equal(t, "cart", joinKey("", "cart"))
}

func TestDisabledRedisHelpersAreNoop(t *testing.T) {
	ctx := context.Background()
	redisEnabled = false
	hit, err := GetJSON(ctx, "catalog:all", &struct{}{})
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, SetJSON(ctx, "catalog:all", []int{1}, time.Minute))
	require.NoError(t, Del(ctx, "catalog:all"))
	_, isMemory := NewDefaultStore().(*MemoryStore)
	assert.True(t, isMemory)
}
