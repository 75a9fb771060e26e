package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyComposition(t *testing.T) {
	assert.Equal(t, "items.list", Key("items.list", ""))
	assert.Equal(t, "items.list?page=2", Key("items.list", "page=2"))
}

func TestGetOrFetchCachesResult(t *testing.T) {
	c := New()
	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrFetch(context.Background(), "k", fetch)
		require.NoError(t, err)
		assert.Equal(t, "value", got)
	}
	assert.Equal(t, 1, calls)
}

func TestGetOrFetchDoesNotCacheErrors(t *testing.T) {
	c := New()
	calls := 0
	boom := errors.New("boom")

	_, err := c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		calls++
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestConcurrentReadersShareOneFetch(t *testing.T) {
	c := New()
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		close(started)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 10)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.GetOrFetch(context.Background(), "k", fetch)
	}()
	<-started

	for i := 1; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (any, error) {
				t.Error("second fetch should not run")
				return nil, nil
			})
		}(i)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestStatusTransitions(t *testing.T) {
	c := New()
	assert.Equal(t, StatusMiss, c.Status("k"))

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()

	<-started
	assert.Equal(t, StatusLoading, c.Status("k"))

	close(release)
	<-done
	assert.Equal(t, StatusSuccess, c.Status("k"))
}

func TestInvalidateExactKeys(t *testing.T) {
	c := New()
	put := func(k string) {
		c.GetOrFetch(context.Background(), k, func(ctx context.Context) (any, error) { return k, nil })
	}
	put("a")
	put("b")

	c.Invalidate("a")
	assert.Equal(t, StatusMiss, c.Status("a"))
	assert.Equal(t, StatusSuccess, c.Status("b"))
}

func TestInvalidateOpDropsAllParamVariants(t *testing.T) {
	c := New()
	put := func(k string) {
		c.GetOrFetch(context.Background(), k, func(ctx context.Context) (any, error) { return k, nil })
	}
	put("items.list")
	put("items.list?page=2")
	put("items.byId?id=1")

	c.InvalidateOp("items.list")
	assert.Equal(t, StatusMiss, c.Status("items.list"))
	assert.Equal(t, StatusMiss, c.Status("items.list?page=2"))
	assert.Equal(t, StatusSuccess, c.Status("items.byId?id=1"))
}

func TestClear(t *testing.T) {
	c := New()
	c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (any, error) { return 1, nil })
	c.Clear()
	assert.Equal(t, StatusMiss, c.Status("k"))
}

func TestPeek(t *testing.T) {
	c := New()
	_, _, ok := c.Peek("k")
	assert.False(t, ok)

	c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (any, error) { return "v", nil })

	data, fetchedAt, ok := c.Peek("k")
	require.True(t, ok)
	assert.Equal(t, "v", data)
	assert.False(t, fetchedAt.IsZero())
}
