// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import "time"

// A Policy is a gate consulted before every attempt, independently of
// the attempt budget. When Retryable returns false no further attempt
// is started.
//
// Remaining reports how long the gate stays open, and false if it is
// not bounded in time. The loop skips a backoff wait which would end
// after the gate closes.
//
// A Policy instance belongs to one retry loop. Refresh returns a new
// instance with the same settings and fresh state, for use by another
// loop.
type Policy interface {
	Retryable() bool
	Remaining() (time.Duration, bool)
	Refresh() Policy
}

// Always is the Policy which never closes the gate. Only the attempt
// budget and the retry conditions then limit the loop.
type Always struct{}

func (Always) Retryable() bool {
	return true
}

func (Always) Remaining() (time.Duration, bool) {
	return 0, false
}

func (a Always) Refresh() Policy {
	return a
}

// A TimeoutPolicy permits attempts only while the time elapsed since
// its creation is below a fixed timeout.
type TimeoutPolicy struct {
	timeout time.Duration
	clock   Clock
	start   time.Time
}

// NewTimeoutPolicy returns a TimeoutPolicy with the given timeout,
// starting now according to clock. A nil clock means SystemClock.
func NewTimeoutPolicy(timeout time.Duration, clock Clock) *TimeoutPolicy {
	if clock == nil {
		clock = SystemClock
	}
	return &TimeoutPolicy{
		timeout: timeout,
		clock:   clock,
		start:   clock.Now(),
	}
}

// Retryable reports whether the elapsed time is still below the
// timeout.
func (p *TimeoutPolicy) Retryable() bool {
	return p.clock.Now().Sub(p.start) < p.timeout
}

// Remaining returns the time left before the timeout, which is zero or
// negative once it has passed.
func (p *TimeoutPolicy) Remaining() (time.Duration, bool) {
	return p.timeout - p.clock.Now().Sub(p.start), true
}

// Refresh returns a new TimeoutPolicy with the same timeout, starting
// now.
func (p *TimeoutPolicy) Refresh() Policy {
	return NewTimeoutPolicy(p.timeout, p.clock)
}

// Timeout returns the configured timeout.
func (p *TimeoutPolicy) Timeout() time.Duration {
	return p.timeout
}
