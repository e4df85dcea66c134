package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLocalLocker_SerializesSameKey(t *testing.T) {
	defer goleak.VerifyNone(t)

	locker := NewLocalLocker()
	ctx := context.Background()

	var current, maxSeen int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithLock(ctx, locker, PlatformCampaignKey("pc1"), func() error {
				n := atomic.AddInt32(&current, 1)
				for {
					seen := atomic.LoadInt32(&maxSeen)
					if n <= seen || atomic.CompareAndSwapInt32(&maxSeen, seen, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&current, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(1), maxSeen)
	assert.Empty(t, locker.slots)
}

func TestLocalLocker_DifferentKeysDoNotBlock(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	releaseA, err := locker.Lock(ctx, "a")
	require.NoError(t, err)
	defer releaseA()

	timeoutCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()

	releaseB, err := locker.Lock(timeoutCtx, "b")
	require.NoError(t, err)
	releaseB()
}

func TestLocalLocker_RespectsContext(t *testing.T) {
	locker := NewLocalLocker()

	release, err := locker.Lock(context.Background(), "pc1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "pc1")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	release()
	release()

	again, err := locker.Lock(context.Background(), "pc1")
	require.NoError(t, err)
	again()
	assert.Empty(t, locker.slots)
}

func TestWithLock_PropagatesError(t *testing.T) {
	locker := NewLocalLocker()
	want := errors.New("falhou")

	err := WithLock(context.Background(), locker, "k", func() error { return want })

	assert.ErrorIs(t, err, want)
}
