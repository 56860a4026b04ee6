// Package retry runs fallible actions under a set of retry strategies.
package retry

import (
	"context"
	"time"
)

// Action is a function to be performed in a retriable manner.
type Action func(ctx context.Context) error

// Strategy decides whether another attempt should be made after a failed one.
// Strategies are allowed to delay. attempts starts at 1.
type Strategy func(ctx context.Context, attempts uint, err error) bool

// Result describes how a retried action ended.
type Result struct {
	Attempts uint
	Err      error // Last error; nil on success
}

// OK reports whether the action eventually succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Policy retries actions according to its strategies.
type Policy struct {
	strategies []Strategy
}

// NewPolicy returns a Policy evaluating strategies in order, so strategies
// that induce delays should be specified last.
func NewPolicy(strategies ...Strategy) *Policy {
	return &Policy{strategies: strategies}
}

// Do runs action until it succeeds or a strategy declines another attempt.
// It never panics on failure; the outcome is reported in the Result.
func (p *Policy) Do(ctx context.Context, action Action) Result {
	for i := uint(1); ; i++ {
		err := action(ctx)
		if err == nil {
			return Result{Attempts: i}
		}
		for _, s := range p.strategies {
			if !s(ctx, i, err) {
				return Result{Attempts: i, Err: err}
			}
		}
	}
}

// Limit returns a strategy capping the total number of attempts.
// maxAttempts should be >= 1, since the action is evaluated first.
func Limit(maxAttempts uint) Strategy {
	return func(_ context.Context, attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// ConstantBackoff returns a strategy that waits delay before the next attempt.
// It declines to retry if ctx is done while waiting.
func ConstantBackoff(delay time.Duration) Strategy {
	return func(ctx context.Context, _ uint, _ error) bool {
		return sleeperImpl.Sleep(ctx, delay) == nil
	}
}

type sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// realSleeper uses a timer to perform actual sleeps.
type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var sleeperImpl sleeper = realSleeper{}
