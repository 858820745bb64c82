// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math"
	"time"
)

const (
	// DefaultAttempts is the number of attempts made when a
	// Configuration does not set one: a single try with no retry.
	DefaultAttempts = 1
	// DefaultBackoffDelay is the wait before the first retry when a
	// Configuration does not set one. The default retries immediately.
	DefaultBackoffDelay time.Duration = 0
	// DefaultBackoffMultiplier is the factor applied to the wait after
	// each retry when a Configuration does not set one. The default
	// keeps the wait constant.
	DefaultBackoffMultiplier = 1.0
)

// Backoff describes the wait between a failed, retryable attempt and
// the next attempt. The wait before attempt n+1 is
//
//	Delay * Multiplier^(n-1)
//
// with no jitter.
type Backoff struct {
	Delay      time.Duration
	Multiplier float64
}

// Wait returns the wait after the given attempt number, where the first
// attempt is 1. It is zero for an attempt number below 1.
func (b Backoff) Wait(attempt int) time.Duration {
	if attempt < 1 || b.Delay <= 0 {
		return 0
	}
	m := b.Multiplier
	if m < 1 {
		m = 1
	}
	d := float64(b.Delay) * math.Pow(m, float64(attempt-1))
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

type field uint8

const (
	fieldAttempts field = 1 << iota
	fieldTimeout
	fieldDelay
	fieldMultiplier
)

// A Configuration is an immutable set of retry settings: the attempt
// budget, an optional wall-clock timeout, the backoff and the conditions
// under which a failure is retried.
//
// Construct a Configuration with NewBuilder or from Metadata. A nil
// *Configuration is valid and means all defaults, which is one attempt
// and so no retry. A Configuration is safe for concurrent use by
// multiple goroutines.
type Configuration struct {
	attempts   int
	timeout    time.Duration
	backoff    Backoff
	conditions []Condition
	set        field
}

// Attempts returns the maximum number of tries, always at least 1.
func (c *Configuration) Attempts() int {
	if c == nil || c.set&fieldAttempts == 0 {
		return DefaultAttempts
	}
	return c.attempts
}

// Timeout returns the wall-clock budget for starting new attempts. Zero
// means unbounded.
func (c *Configuration) Timeout() time.Duration {
	if c == nil {
		return 0
	}
	return c.timeout
}

// Backoff returns the backoff settings, with defaults substituted for
// unset fields.
func (c *Configuration) Backoff() Backoff {
	b := Backoff{Delay: DefaultBackoffDelay, Multiplier: DefaultBackoffMultiplier}
	if c == nil {
		return b
	}
	if c.set&fieldDelay != 0 {
		b.Delay = c.backoff.Delay
	}
	if c.set&fieldMultiplier != 0 {
		b.Multiplier = c.backoff.Multiplier
	}
	return b
}

// Conditions returns a copy of the retry conditions.
func (c *Configuration) Conditions() []Condition {
	if c == nil || len(c.conditions) == 0 {
		return nil
	}
	cs := make([]Condition, len(c.conditions))
	copy(cs, c.conditions)
	return cs
}

// Matcher returns a new Matcher for the conditions of c.
func (c *Configuration) Matcher() *Matcher {
	if c == nil {
		return NewMatcher()
	}
	return NewMatcher(c.conditions...)
}

// Policy returns a new policy gate for c: a TimeoutPolicy started now
// if c has a timeout, and Always otherwise.
func (c *Configuration) Policy(clock Clock) Policy {
	if d := c.Timeout(); d > 0 {
		return NewTimeoutPolicy(d, clock)
	}
	return Always{}
}

// Merge combines an explicit configuration, typically derived from
// per-call metadata, with a fallback shared by many calls.
//
// Each setting of explicit that was set takes precedence over the same
// setting of fallback. The conditions of explicit replace those of
// fallback entirely unless explicit has none. Either argument may be
// nil.
func Merge(explicit, fallback *Configuration) *Configuration {
	if explicit == nil {
		return fallback
	}
	if fallback == nil {
		return explicit
	}

	c := &Configuration{}
	for _, src := range []*Configuration{fallback, explicit} {
		if src.set&fieldAttempts != 0 {
			c.attempts = src.attempts
		}
		if src.set&fieldTimeout != 0 {
			c.timeout = src.timeout
		}
		if src.set&fieldDelay != 0 {
			c.backoff.Delay = src.backoff.Delay
		}
		if src.set&fieldMultiplier != 0 {
			c.backoff.Multiplier = src.backoff.Multiplier
		}
		c.set |= src.set
	}
	c.conditions = explicit.conditions
	if len(c.conditions) == 0 {
		c.conditions = fallback.conditions
	}
	return c
}
