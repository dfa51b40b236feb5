// Package retrylimit provides paced retries for clients talking to flaky
// remote endpoints. Attempts are spaced through a token-bucket limiter so
// a tight retry loop can never hammer the remote side, and reconnect-style
// loops get an exponential backoff helper.
//
// Typical usage:
//
//	err := retrylimit.Do(ctx, retrylimit.Policy{Retries: 2, Delay: time.Second},
//	    func(ctx context.Context) (bool, error) {
//	        res, err := fetch(ctx)
//	        if err != nil {
//	            return false, err
//	        }
//	        return len(res) > 0, nil
//	    })
package retrylimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Policy describes a bounded retry budget.
type Policy struct {
	Retries int           // additional attempts after the first
	Delay   time.Duration // minimum spacing between consecutive attempts
}

// Do runs fn until it reports done, the retry budget is spent, or ctx is
// cancelled. An error from fn aborts immediately and is returned as-is; a
// nil error with done=false consumes one retry. Exhausting the budget is
// not an error.
func Do(ctx context.Context, p Policy, fn func(context.Context) (bool, error)) error {
	lim := rate.NewLimiter(rate.Every(p.Delay), 1)
	for attempt := 0; ; attempt++ {
		if err := lim.Wait(ctx); err != nil {
			return err
		}
		done, err := fn(ctx)
		if err != nil {
			return err
		}
		if done || attempt >= p.Retries {
			return nil
		}
	}
}

// Backoff produces exponentially growing delays for loops that should slow
// down while a remote stays dead. The zero value is not usable; set Initial
// and Max.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration

	current time.Duration
}

// Next returns the delay to wait before the upcoming attempt and doubles
// the internal delay, capped at Max.
func (b *Backoff) Next() time.Duration {
	if b.current <= 0 {
		b.current = b.Initial
	}
	d := b.current
	b.current *= 2
	if b.current > b.Max {
		b.current = b.Max
	}
	return d
}

// Reset restores the delay to Initial. Call it after a successful attempt.
func (b *Backoff) Reset() {
	b.current = 0
}

// Sleep waits for the next backoff delay or until ctx is cancelled.
func (b *Backoff) Sleep(ctx context.Context) error {
	t := time.NewTimer(b.Next())
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
