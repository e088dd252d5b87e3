package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Total int64 `json:"total"`
}

func newTestCache(t *testing.T) (*Versioned, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewVersioned(client, "test", time.Minute), mr
}

func TestFetchJSONCachesUntilBump(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return payload{Total: int64(calls * 100)}, nil
	}

	key, err := c.BuildKey(ctx, "summary", "e1")
	require.NoError(t, err)
	assert.Equal(t, "summary:e1:1", key)

	var got payload
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, int64(100), got.Total)
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, 1, calls)

	require.NoError(t, c.Bump(ctx))
	key, err = c.BuildKey(ctx, "summary", "e1")
	require.NoError(t, err)
	assert.Equal(t, "summary:e1:2", key)
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, int64(200), got.Total)
	assert.Equal(t, 2, calls)
}

func TestFetchJSONPropagatesLoaderError(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("boom")
	var got payload
	err := c.FetchJSON(context.Background(), "k", &got, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestFetchJSONRequiresLoader(t *testing.T) {
	c, _ := newTestCache(t)
	var got payload
	assert.ErrorIs(t, c.FetchJSON(context.Background(), "k", &got, nil), ErrLoaderRequired)
}

func TestFetchJSONCollapsesConcurrentMisses(t *testing.T) {
	c, _ := newTestCache(t)
	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return payload{Total: 7}, nil
	}

	var wg sync.WaitGroup
	results := make([]payload, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.FetchJSON(context.Background(), "shared", &results[i], loader)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, int64(7), r.Total)
	}
}

func TestNilClientCallsLoader(t *testing.T) {
	c := NewVersioned(nil, "test", time.Minute)
	ctx := context.Background()
	key, err := c.BuildKey(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", key)

	var got payload
	require.NoError(t, c.FetchJSON(ctx, key, &got, func(context.Context) (any, error) { return payload{Total: 3}, nil }))
	assert.Equal(t, int64(3), got.Total)
	assert.NoError(t, c.Bump(ctx))
}

func TestBumpIsSharedAndMonotonicAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	newClient := func() *redis.Client {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return client
	}
	api := NewVersioned(newClient(), "test", time.Minute)
	worker := NewVersioned(newClient(), "test", time.Minute)

	for i := 0; i < 3; i++ {
		require.NoError(t, api.Bump(ctx))
	}
	require.NoError(t, worker.Bump(ctx))
	require.NoError(t, api.Bump(ctx))

	for _, c := range []*Versioned{api, worker} {
		ver, err := c.Version(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), ver)
	}
	key, err := worker.BuildKey(ctx, "summary", "e1")
	require.NoError(t, err)
	assert.Equal(t, "summary:e1:5", key)
}
