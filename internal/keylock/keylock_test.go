package keylock

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocks_NoLeak(t *testing.T) {
	locks := New()
	ctx := context.Background()

	for i := 0; i < 10000; i++ {
		key := fmt.Sprintf("query-%d", i)
		require.NoError(t, locks.WithLock(ctx, key, func(context.Context) error { return nil }))
	}

	assert.Equal(t, 0, locks.Len())
	assert.Empty(t, locks.entries)
}

func TestLocks_SerialisesSameKey(t *testing.T) {
	locks := New()
	ctx := context.Background()

	var (
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = locks.WithLock(ctx, "same", func(context.Context) error {
				n := inside.Add(1)
				if n > maxSeen.Load() {
					maxSeen.Store(n)
				}
				inside.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load())
	assert.Equal(t, 0, locks.Len())
}

func TestLocks_PropagatesErrors(t *testing.T) {
	locks := New()
	boom := fmt.Errorf("boom")

	err := locks.WithLock(context.Background(), "k", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = locks.WithLock(ctx, "k", func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.Equal(t, 0, locks.Len())
}
