// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math"
	"time"
)

// A Builder accumulates retry settings and produces an immutable
// Configuration.
//
//	cfg := retry.NewBuilder().
//		Attempts(3).
//		Timeout(10 * time.Second).
//		When(retry.Any5xx, retry.IOFailure).
//		Backoff(100*time.Millisecond, 2).
//		Build()
//
// Every setter panics on an invalid value. A Builder may be reused after
// Build, and later changes do not affect Configurations already built.
type Builder struct {
	c Configuration
}

// NewBuilder returns an empty Builder. Building it without setting
// anything yields the default Configuration.
func NewBuilder() *Builder {
	return &Builder{}
}

// Attempts sets the maximum number of tries. It panics if n < 1.
func (b *Builder) Attempts(n int) *Builder {
	if n < 1 {
		panic("restify/retry: attempts must be at least 1")
	}
	b.c.attempts = n
	b.c.set |= fieldAttempts
	return b
}

// Timeout sets the wall-clock budget for starting new attempts. Zero
// means unbounded. It panics if d is negative.
func (b *Builder) Timeout(d time.Duration) *Builder {
	if d < 0 {
		panic("restify/retry: timeout must not be negative")
	}
	b.c.timeout = d
	b.c.set |= fieldTimeout
	return b
}

// When adds retry conditions. It panics if any condition is nil.
func (b *Builder) When(conditions ...Condition) *Builder {
	for _, c := range conditions {
		if c == nil || isNilFunc(c) {
			panic("restify/retry: nil condition")
		}
	}
	b.c.conditions = append(b.c.conditions, conditions...)
	return b
}

// Backoff sets both the initial delay and the multiplier.
func (b *Builder) Backoff(delay time.Duration, multiplier float64) *Builder {
	return b.Delay(delay).Multiplier(multiplier)
}

// Delay sets the wait before the first retry. It panics if d is
// negative.
func (b *Builder) Delay(d time.Duration) *Builder {
	if d < 0 {
		panic("restify/retry: backoff delay must not be negative")
	}
	b.c.backoff.Delay = d
	b.c.set |= fieldDelay
	return b
}

// Multiplier sets the factor applied to the wait after each retry. It
// panics unless m is a finite number of at least 1.
func (b *Builder) Multiplier(m float64) *Builder {
	if !(m >= 1) || math.IsInf(m, 1) {
		panic("restify/retry: backoff multiplier must be finite and at least 1")
	}
	b.c.backoff.Multiplier = m
	b.c.set |= fieldMultiplier
	return b
}

// Build returns a Configuration holding the accumulated settings.
func (b *Builder) Build() *Configuration {
	c := b.c
	c.conditions = b.c.Conditions()
	return &c
}

func isNilFunc(c Condition) bool {
	switch f := c.(type) {
	case StatusCondition:
		return f == nil
	case CauseCondition:
		return f == nil
	case HeaderCondition:
		return f == nil
	case ResponseCondition:
		return f == nil
	}
	return false
}
