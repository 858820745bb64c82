// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan, which describes a logical
HTTP request, and Execution, which describes the execution of a Plan.

A Plan looks like a stripped-down http.Request with a pre-buffered body,
so that the same request can be sent on every attempt:

	p, err := request.NewPlan("GET", "https://example.com", nil)
	...
	e, err := client.Do(p)
	...

A Plan may carry retry settings for this call only, which the client
merges over its own:

	p = p.WithRetry(retry.NewBuilder().Attempts(5).When(retry.Any5xx).Build())

A deadline on the plan context bounds the whole execution and is
separate from the per-attempt deadline chosen by the client's
timeout.Policy. An attempt that exceeds its own deadline may be retried.
One that exceeds the plan deadline ends the execution.
*/
package request
