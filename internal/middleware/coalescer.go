package middleware

import (
	"context"
	"sync"
	"time"

	domrepo "QuantLab/internal/domain/repository"
)

// Coalescer is a middleware between the HTTP surface and the computation
// service. Identical requests arriving while one is already running share
// its result, and results are held for a short window so a burst of equal
// requests triggers a single computation.
type Coalescer struct {
	metrics domrepo.Metrics
	window  time.Duration

	mu    sync.Mutex
	calls map[string]*call
}

type call struct {
	done chan struct{}
	val  interface{}
	err  error
	// doneAt is set when the call completes; zero while in flight.
	doneAt time.Time
}

type CoalescerOption func(*Coalescer)

// WithWindow sets how long a finished result keeps absorbing duplicates.
func WithWindow(d time.Duration) CoalescerOption {
	return func(c *Coalescer) {
		if d > 0 {
			c.window = d
		}
	}
}

// NewCoalescer creates a coalescer with a 300ms default hold window.
func NewCoalescer(metrics domrepo.Metrics, opts ...CoalescerOption) *Coalescer {
	c := &Coalescer{
		metrics: metrics,
		window:  300 * time.Millisecond,
		calls:   make(map[string]*call),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do runs fn for key, joining an in-flight or freshly finished identical
// call instead when one exists. The context only bounds the wait of
// joiners; the owning call runs to completion so late joiners still get a
// result.
func (c *Coalescer) Do(ctx context.Context, key string, fn func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if existing, ok := c.calls[key]; ok {
		if existing.doneAt.IsZero() || time.Since(existing.doneAt) < c.window {
			c.mu.Unlock()
			c.metrics.RecordCompute("coalesced")
			select {
			case <-existing.done:
				return existing.val, existing.err
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		// Held result went stale; replace it.
		delete(c.calls, key)
	}

	cl := &call{done: make(chan struct{})}
	c.calls[key] = cl
	c.mu.Unlock()

	cl.val, cl.err = fn()

	c.mu.Lock()
	cl.doneAt = time.Now()
	c.mu.Unlock()
	close(cl.done)

	// Drop the held entry once the window passes so the map stays small.
	time.AfterFunc(c.window, func() {
		c.mu.Lock()
		if c.calls[key] == cl {
			delete(c.calls, key)
		}
		c.mu.Unlock()
	})

	return cl.val, cl.err
}
