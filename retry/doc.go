// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry runs an attempt operation repeatedly until it succeeds
// or a stop condition is reached.
//
// A Configuration holds the attempt budget, an optional wall-clock
// timeout, the backoff between attempts and the conditions under which
// a failure is retried. Build one with NewBuilder:
//
//	cfg := retry.NewBuilder().
//		Attempts(3).
//		When(retry.Any5xx, retry.IOFailure).
//		Backoff(100*time.Millisecond, 2).
//		Build()
//
// or translate per-call Metadata with Metadata.Configuration, and
// combine a per-call Configuration with a shared one using Merge.
//
// Conditions come in four kinds. StatusCondition, HeaderCondition and
// ResponseCondition examine typed HTTP failures (*failure.Error).
// CauseCondition examines any other error and, through the Matcher, each
// of its wrapped causes. A failure is retried if any one condition
// matches it. A failure which matches none is returned at once.
//
// Run and Do drive the loop:
//
//	body, err := retry.Do(ctx, cfg, func(ctx context.Context) (string, error) {
//		return fetch(ctx)
//	})
//
// Before each attempt the loop consults a Policy gate, either Always or
// a TimeoutPolicy which closes once the configured timeout has elapsed
// since the loop began.
package retry
