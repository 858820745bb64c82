// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"math"
	"time"

	"github.com/ljtfreitas/java-restify-sub003/request"
)

// A Policy chooses the timeout of each attempt of a plan execution.
//
// The attempt timeout is separate from the retry timeout of a
// retry.Configuration, which only bounds when a new attempt may start.
// An attempt that runs past its own timeout fails with a timeout error,
// which the retry.IOFailure condition retries.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout for the attempt about to start.
	// Parameter e holds the execution state, including the number and
	// outcome of the previous attempt.
	Timeout(e *request.Execution) time.Duration
}

// PolicyFunc adapts an ordinary function into a Policy.
type PolicyFunc func(e *request.Execution) time.Duration

// Timeout calls f(e).
func (f PolicyFunc) Timeout(e *request.Execution) time.Duration {
	return f(e)
}

// DefaultPolicy sets a fixed timeout of 5 seconds on each attempt.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Infinite never times out an attempt.
var Infinite Policy = Fixed(math.MaxInt64)

// Fixed returns a Policy which gives every attempt the timeout d.
func Fixed(d time.Duration) Policy {
	return adaptive{d}
}

// Adaptive returns a Policy which lengthens the timeout after attempts
// that timed out.
//
// The first attempt, and every attempt following one which did not
// time out, gets the usual timeout. An attempt following a timeout gets
// after[k-1], where k is the number of timeouts so far in the
// execution, or the last element of after once k exceeds len(after).
//
//	p := timeout.Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// Use Adaptive when the remote service has one-off slow responses that
// a quick timeout and retry cure, but also goes through bursts of
// slowness during which a quick timeout would fail every attempt.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make(adaptive, 1, 1+len(after))
	p[0] = usual
	return append(p, after...)
}

type adaptive []time.Duration

func (p adaptive) Timeout(e *request.Execution) time.Duration {
	if !e.Timeout() {
		return p[0]
	}
	i := e.AttemptTimeouts
	if i > len(p)-1 {
		i = len(p) - 1
	}
	return p[i]
}
