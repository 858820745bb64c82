// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrExhausted is returned when a retry loop ends without having made a
// single attempt, which happens only if the policy gate is closed from
// the start.
var ErrExhausted = errors.New("restify/retry: exhausted with no attempt made")

// A CancelledError is returned when the context of a retry loop is done
// after at least one failed attempt. It wraps both the context error and
// the last failure.
type CancelledError struct {
	// Err is the context error.
	Err error
	// Attempts is the number of attempts made.
	Attempts int
	// Last is the failure of the last attempt.
	Last error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("restify/retry: %v after attempt %d: %v", e.Err, e.Attempts, e.Last)
}

// Unwrap returns the context error and the last failure.
func (e *CancelledError) Unwrap() []error {
	return []error{e.Err, e.Last}
}

// Timeout reports whether the context deadline was exceeded.
func (e *CancelledError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// An Attempt performs one try of an operation. It returns a value on
// success or the failure which ended the try.
type Attempt[T any] func(ctx context.Context) (T, error)

// OnRetryFunc is called before the wait that precedes each retry, with
// the number of the attempt which just failed and the failure.
type OnRetryFunc func(attempt int, err error, wait time.Duration)

// An Option customizes one call to Run or Do.
type Option func(*options)

type options struct {
	clock   Clock
	logger  *slog.Logger
	onRetry OnRetryFunc
	policy  Policy
}

// WithClock sets the Clock used for the timeout and the backoff wait.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithPolicy replaces the policy gate derived from the Configuration.
// Each loop gates its attempts on p.Refresh(), so one Policy may be
// shared by many calls.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger sets the logger. The loop logs each retry at Debug level,
// and at Warn level a budget exhausted after at least one retry.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOnRetry sets a function to be called before every retry.
func WithOnRetry(f OnRetryFunc) Option {
	return func(o *options) {
		o.onRetry = f
	}
}

// Run calls attempt until it succeeds, a failure does not match the
// conditions of cfg, or the attempt budget or timeout of cfg runs out.
//
// Attempts are strictly sequential. Between a failed, retryable attempt
// and the next, Run waits on the calling goroutine for the backoff of
// cfg. A failure which matches no condition is returned unchanged and
// immediately. When the budget or timeout runs out the last failure is
// returned, or ErrExhausted if no attempt was made.
//
// Run checks ctx before every attempt and during the wait, but does not
// interrupt an attempt in flight. When ctx is done the returned error is
// ctx.Err() if no attempt was made, and a *CancelledError otherwise.
//
// A nil cfg makes exactly one attempt.
func Run(ctx context.Context, cfg *Configuration, attempt func(ctx context.Context) error, opts ...Option) error {
	_, err := Do[struct{}](ctx, cfg, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, attempt(ctx)
	}, opts...)
	return err
}

// Do is like Run for an attempt which returns a value. On success it
// returns the value of the successful attempt.
func Do[T any](ctx context.Context, cfg *Configuration, attempt Attempt[T], opts ...Option) (T, error) {
	o := options{
		clock:  SystemClock,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	policy := cfg.Policy(o.clock)
	if o.policy != nil {
		policy = o.policy.Refresh()
	}
	l := loop[T]{
		options:  o,
		attempts: cfg.Attempts(),
		matcher:  cfg.Matcher(),
		policy:   policy,
		waiter:   newWaiter(cfg.Backoff()),
	}
	return l.run(ctx, attempt)
}

type loop[T any] struct {
	options
	attempts int
	matcher  *Matcher
	policy   Policy
	waiter   *waiter
	n        int
	last     error
}

func (l *loop[T]) run(ctx context.Context, attempt Attempt[T]) (T, error) {
	var zero T
	for l.n < l.attempts && l.policy.Retryable() {
		if err := ctx.Err(); err != nil {
			return zero, l.cancelled(err)
		}

		l.n++
		v, err := attempt(ctx)
		if err == nil {
			return v, nil
		}
		l.last = err

		if !l.matcher.Match(err) {
			return zero, err
		}
		if l.n == l.attempts {
			break
		}

		wait := l.waiter.next()
		if !l.permits(wait) {
			break
		}
		l.logger.Debug("retrying after failed attempt",
			"attempt", l.n,
			"wait", wait,
			"error", err)
		if l.onRetry != nil {
			l.onRetry(l.n, err, wait)
		}
		if wait > 0 {
			if err := l.clock.Sleep(ctx, wait); err != nil {
				return zero, l.cancelled(err)
			}
		}
	}

	if l.last == nil {
		return zero, ErrExhausted
	}
	level := slog.LevelDebug
	if l.n > 1 {
		level = slog.LevelWarn
	}
	l.logger.Log(ctx, level, "retries exhausted",
		"attempts", l.n,
		"error", l.last)
	return zero, l.last
}

// permits reports whether the policy gate would still be open after
// waiting for d.
func (l *loop[T]) permits(d time.Duration) bool {
	if !l.policy.Retryable() {
		return false
	}
	left, bounded := l.policy.Remaining()
	return !bounded || d < left
}

func (l *loop[T]) cancelled(err error) error {
	if l.last == nil {
		return err
	}
	return &CancelledError{Err: err, Attempts: l.n, Last: l.last}
}
