// Package debounce coalesces bursts of events into a single callback fired after a quiet period.
package debounce

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultQuietPeriod matches the resize delay of the dashboard pages.
const DefaultQuietPeriod = 500 * time.Millisecond

// Debouncer runs fn once the quiet period has passed without another Trigger.
type Debouncer struct {
	quiet time.Duration
	fn    func()

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	cancelled  bool
	running    sync.WaitGroup
}

// New returns a Debouncer. A non-positive quiet period uses DefaultQuietPeriod.
func New(quiet time.Duration, fn func()) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer{quiet: quiet, fn: fn}
}

// Trigger (re)starts the quiet period. It is a no-op after Cancel.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancelled {
		return
	}
	d.generation++
	gen := d.generation
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

// a timer that lost the Stop race still carries an old generation and is dropped here
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.cancelled || gen != d.generation {
		current := d.generation
		d.mu.Unlock()
		log.Debug().Uint64("generation", gen).Uint64("current", current).Msg("superseded debounce fire dropped")
		return
	}
	d.timer = nil
	d.running.Add(1)
	d.mu.Unlock()
	defer d.running.Done()
	d.fn()
}

// Wait blocks until callbacks started by the timer have returned.
func (d *Debouncer) Wait() {
	d.running.Wait()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Flush runs a pending call immediately on the calling goroutine. It reports whether there was one.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.cancelled || d.timer == nil {
		d.mu.Unlock()
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.generation++
	d.mu.Unlock()
	d.fn()
	return true
}

// Cancel drops any pending call and disables the debouncer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelled = true
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
		log.Debug().Uint64("generation", d.generation).Msg("pending debounce call cancelled")
	}
}

// Coalescer keeps the latest pushed value and hands it to the callback after the quiet period.
// Earlier values of a burst are discarded: last write wins.
type Coalescer[T any] struct {
	d *Debouncer

	mu     sync.Mutex
	latest T
}

func NewCoalescer[T any](quiet time.Duration, fn func(T)) *Coalescer[T] {
	c := &Coalescer[T]{}
	c.d = New(quiet, func() {
		c.mu.Lock()
		v := c.latest
		c.mu.Unlock()
		fn(v)
	})
	return c
}

func (c *Coalescer[T]) Push(v T) {
	c.mu.Lock()
	c.latest = v
	c.mu.Unlock()
	c.d.Trigger()
}

func (c *Coalescer[T]) Flush() bool {
	return c.d.Flush()
}

func (c *Coalescer[T]) Cancel() {
	c.d.Cancel()
}

// Run pushes every value received on events until ctx is done or events is closed.
// On close the pending value is delivered before Run returns; on ctx cancellation it is dropped.
// Either way Run returns only after a callback already in flight has finished.
func (c *Coalescer[T]) Run(ctx context.Context, events <-chan T) error {
	for {
		select {
		case <-ctx.Done():
			c.Cancel()
			c.d.Wait()
			return ctx.Err()
		case v, ok := <-events:
			if !ok {
				log.Debug().Msg("coalescer input closed")
				c.Flush()
				c.d.Wait()
				return nil
			}
			c.Push(v)
		}
	}
}
