package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behavior every storing backend shares.
func runContract(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	_, hit, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit, "empty cache should miss")

	require.NoError(t, c.Set(ctx, "k", []byte(`{"a":1}`), time.Hour))
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, `{"a":1}`, string(data))

	require.NoError(t, c.Set(ctx, "k", []byte("v2"), 0))
	data, _, _ = c.Get(ctx, "k")
	assert.Equal(t, "v2", string(data), "Set should overwrite")

	require.NoError(t, c.Delete(ctx, "k"))
	_, hit, _ = c.Get(ctx, "k")
	assert.False(t, hit, "deleted key should miss")
	assert.NoError(t, c.Delete(ctx, "k"), "deleting a missing key is not an error")
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))
	data, hit, err := c.Get(ctx, "key")
	assert.NoError(t, err)
	assert.False(t, hit, "NullCache should not store data")
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "key"))
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	runContract(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	_, hit, _ := c.Get(ctx, "k")
	assert.True(t, hit)

	now = now.Add(2 * time.Minute)
	_, hit, _ = c.Get(ctx, "k")
	assert.False(t, hit, "expired entry should miss")
	_, err = os.Stat(c.path("k"))
	assert.True(t, os.IsNotExist(err), "expired entry should be removed")
}

func TestFileCacheCorruptEntryMisses(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	path := c.path("k")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, hit, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, c.Dir())

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}
	n, err := c.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, hit, _ := c.Get(ctx, "a")
	assert.False(t, hit)
}

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	c := NewRedisCacheFromClient(client, WithRedisPrefix("test:"))
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestRedisCache(t *testing.T) {
	_, c := newMiniRedis(t)
	runContract(t, c)
}

func TestRedisCacheTTLAndPrefix(t *testing.T) {
	ctx := context.Background()
	mr, c := newMiniRedis(t)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	assert.True(t, mr.Exists("test:k"), "key should carry the prefix")

	mr.FastForward(2 * time.Second)
	_, hit, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, hit, "expired key should miss")
}

func TestRedisCacheClear(t *testing.T) {
	ctx := context.Background()
	mr, c := newMiniRedis(t)
	require.NoError(t, mr.Set("other", "keep"))

	for _, k := range []string{"a", "b"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}
	n, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, mr.Exists("other"), "Clear must only touch prefixed keys")
}

func TestNewRedisCacheUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = NewRedisCache(ctx, addr, "", 0)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()
	in := map[string]any{"values": []int{5, 3, 8}}

	a := k.TraceKey("bubbleSort", in, map[string]any{"x": 1, "y": 2})
	b := k.TraceKey("bubbleSort", in, map[string]any{"y": 2, "x": 1})
	assert.Equal(t, a, b, "parameter order must not matter")
	assert.NotEqual(t, a, k.TraceKey("quickSort", in, nil))
	assert.Contains(t, a, "trace:")

	r := k.RenderKey(a, 3, "svg")
	assert.NotEqual(t, r, k.RenderKey(a, 4, "svg"))
	assert.NotEqual(t, r, k.RenderKey(a, 3, "dot"))

	scoped := NewScopedKeyer(nil, "api:")
	assert.Equal(t, "api:"+a, scoped.TraceKey("bubbleSort", in, map[string]any{"x": 1, "y": 2}))
}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash([]byte("hello")), Hash([]byte("hello")))
	assert.NotEqual(t, Hash([]byte("hello")), Hash([]byte("world")))
	assert.Len(t, Hash([]byte("hello")), 64)
}

func TestRetryWithBackoff(t *testing.T) {
	retryDelay = time.Millisecond
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 3 {
			return Retryable(errors.New("flaky"))
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	permanent := errors.New("permanent")
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls, "non-retryable errors are not retried")

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(errors.New("down"))
	})
	assert.True(t, IsRetryable(err))
	assert.Equal(t, 3, calls)

	assert.Nil(t, Retryable(nil))
}
