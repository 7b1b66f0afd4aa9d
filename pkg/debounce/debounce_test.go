package debounce

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quiet = 30 * time.Millisecond

func TestDebouncerCoalescesBurst(t *testing.T) {
	var calls atomic.Int32
	d := New(quiet, func() { calls.Add(1) })

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(quiet / 10)
	}
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return calls.Load() > 1 }, 3*quiet, 5*time.Millisecond)
	assert.False(t, d.Pending())
}

func TestDebouncerFiresAgainAfterQuietPeriod(t *testing.T) {
	var calls atomic.Int32
	d := New(quiet, func() { calls.Add(1) })

	d.Trigger()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	d.Trigger()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncerCancel(t *testing.T) {
	var calls atomic.Int32
	d := New(quiet, func() { calls.Add(1) })

	d.Trigger()
	d.Cancel()
	d.Trigger()

	assert.False(t, d.Pending())
	assert.Never(t, func() bool { return calls.Load() > 0 }, 3*quiet, 5*time.Millisecond)
}

func TestNewDefaultsQuietPeriod(t *testing.T) {
	d := New(0, func() {})
	assert.Equal(t, DefaultQuietPeriod, d.quiet)
}

func TestCoalescerLastWriteWins(t *testing.T) {
	var (
		mu  sync.Mutex
		got []int
	)
	c := NewCoalescer(quiet, func(width int) {
		mu.Lock()
		got = append(got, width)
		mu.Unlock()
	})

	for _, w := range []int{320, 375, 414, 768, 1024} {
		c.Push(w)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, []int{1024}, got)
	mu.Unlock()
}

func TestCoalescerRun(t *testing.T) {
	delivered := make(chan int, 4)
	c := NewCoalescer(quiet, func(width int) { delivered <- width })
	events := make(chan int)

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background(), events) }()

	events <- 500
	events <- 900
	close(events)

	require.NoError(t, <-done)
	require.Len(t, delivered, 1)
	assert.Equal(t, 900, <-delivered)
	assert.Never(t, func() bool { return len(delivered) > 0 }, 3*quiet, 5*time.Millisecond)
}

func TestDebouncerFlush(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Hour, func() { calls.Add(1) })

	assert.False(t, d.Flush())
	d.Trigger()
	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
	assert.False(t, d.Flush())
}

func TestCoalescerRunCancelled(t *testing.T) {
	var calls atomic.Int32
	c := NewCoalescer(quiet, func(int) { calls.Add(1) })
	events := make(chan int)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, events) }()

	events <- 500
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Never(t, func() bool { return calls.Load() > 0 }, 3*quiet, 5*time.Millisecond)
}

func TestCoalescerRunCancelWaitsForCallback(t *testing.T) {
	started := make(chan int, 1)
	release := make(chan struct{})
	c := NewCoalescer(quiet, func(width int) {
		started <- width
		<-release
	})
	events := make(chan int)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, events) }()

	events <- 768
	require.Equal(t, 768, <-started)
	cancel()

	assert.Never(t, func() bool { return len(done) > 0 }, 3*quiet, 5*time.Millisecond)
	close(release)
	assert.ErrorIs(t, <-done, context.Canceled)
}
