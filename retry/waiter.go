// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// A waiter yields the successive backoff waits of one retry loop. It is
// never shared between loops.
type waiter struct {
	exp *backoff.ExponentialBackOff
}

func newWaiter(b Backoff) *waiter {
	m := b.Multiplier
	if m < 1 {
		m = 1
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = b.Delay
	exp.RandomizationFactor = 0
	exp.Multiplier = m
	exp.MaxInterval = time.Duration(math.MaxInt64)
	exp.Reset()
	return &waiter{exp: exp}
}

// next returns the wait after the next failed attempt: the configured
// delay after the first, growing by the multiplier after each one
// thereafter.
func (w *waiter) next() time.Duration {
	d := w.exp.NextBackOff()
	if d < 0 {
		return 0
	}
	return d
}
