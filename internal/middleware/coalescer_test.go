package middleware

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type nopMetrics struct{}

func (nopMetrics) RecordCompute(string)             {}
func (nopMetrics) RecordError(string)               {}
func (nopMetrics) RecordLatency(string, float64)    {}
func (nopMetrics) RecordPathsSimulated(string, int) {}

func TestCoalescerSharesInFlightCall(t *testing.T) {
	c := NewCoalescer(nopMetrics{})
	var runs int64
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]interface{}, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Do(context.Background(), "k", func() (interface{}, error) {
				atomic.AddInt64(&runs, 1)
				<-release
				return 7, nil
			})
			if err != nil {
				t.Errorf("Do: %v", err)
			}
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt64(&runs); got != 1 {
		t.Fatalf("fn ran %d times", got)
	}
	for i, v := range results {
		if v != 7 {
			t.Fatalf("result %d = %v", i, v)
		}
	}
}

func TestCoalescerHoldsResultWithinWindow(t *testing.T) {
	c := NewCoalescer(nopMetrics{}, WithWindow(200*time.Millisecond))
	var runs int64

	run := func() (interface{}, error) {
		atomic.AddInt64(&runs, 1)
		return "x", nil
	}
	if _, err := c.Do(context.Background(), "k", run); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if _, err := c.Do(context.Background(), "k", run); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got := atomic.LoadInt64(&runs); got != 1 {
		t.Fatalf("duplicate inside window ran fn %d times", got)
	}
}

func TestCoalescerRerunsAfterWindow(t *testing.T) {
	c := NewCoalescer(nopMetrics{}, WithWindow(10*time.Millisecond))
	var runs int64

	run := func() (interface{}, error) {
		atomic.AddInt64(&runs, 1)
		return nil, nil
	}
	c.Do(context.Background(), "k", run)
	time.Sleep(30 * time.Millisecond)
	c.Do(context.Background(), "k", run)

	if got := atomic.LoadInt64(&runs); got != 2 {
		t.Fatalf("fn ran %d times, want 2", got)
	}
}

func TestCoalescerDistinctKeysRunIndependently(t *testing.T) {
	c := NewCoalescer(nopMetrics{})
	var runs int64

	run := func() (interface{}, error) {
		atomic.AddInt64(&runs, 1)
		return nil, nil
	}
	c.Do(context.Background(), "a", run)
	c.Do(context.Background(), "b", run)

	if got := atomic.LoadInt64(&runs); got != 2 {
		t.Fatalf("fn ran %d times, want 2", got)
	}
}

func TestCoalescerPropagatesError(t *testing.T) {
	c := NewCoalescer(nopMetrics{})
	sentinel := errors.New("boom")

	_, err := c.Do(context.Background(), "k", func() (interface{}, error) {
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v", err)
	}

	// Failed results are held like successes; duplicates see the error.
	_, err = c.Do(context.Background(), "k", func() (interface{}, error) {
		t.Fatalf("fn must not rerun inside window")
		return nil, nil
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("held err = %v", err)
	}
}

func TestCoalescerJoinerHonorsContext(t *testing.T) {
	c := NewCoalescer(nopMetrics{})
	release := make(chan struct{})
	defer close(release)

	go c.Do(context.Background(), "k", func() (interface{}, error) {
		<-release
		return nil, nil
	})
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Do(ctx, "k", func() (interface{}, error) { return nil, nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
}
