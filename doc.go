// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package restify provides an HTTP client which retries failed requests
according to declarative retry settings, and reports the result of each
call as a value callers can recover from.

Create a Client to begin making requests.

	client := &restify.Client{
		Retry: retry.NewBuilder().
			Attempts(3).
			When(retry.Any5xx, retry.IOFailure).
			Backoff(100*time.Millisecond, 2).
			Build(),
	}
	e, err := client.Get("https://www.example.com")

A response with a client or server error status ends the attempt with a
*failure.Error, which callers can inspect with errors.As or compare with
a failure.Kind using errors.Is:

	if errors.Is(err, failure.NotFound) {
		...
	}

A plan may carry its own retry settings, which take precedence over the
client's:

	p, _ := request.NewPlan("GET", "https://www.example.com/widgets", nil)
	p = p.WithRetry(retry.NewBuilder().Attempts(5).Build())
	e, err := client.Do(p)

Use Fetch to decode the result into an outcome.Outcome, and recover from
expected failures:

	o, err := restify.Fetch(client, p, restify.String)
	if err != nil {
		return err
	}
	o = o.RecoverKind(failure.NotFound, func(*failure.Error) (string, error) {
		return "[]", nil
	})

Execute applies the same retry logic to any attempt function, whether or
not it speaks HTTP through a Client.

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer such as a GoLang standard HTTP client.
For control over individual attempt timeouts, set a timeout policy from
package timeout.

To hook into the fine-grained details of the client's request execution
logic, install a handler into the appropriate handler chain:

	handlers := &restify.HandlerGroup{}
	handlers.PushBack(restify.BeforeBackoff, restify.HandlerFunc(
		func(_ restify.Event, e *request.Execution) {
			log.Printf("Attempt %d failed, waiting %s", e.Attempt, e.Wait)
		}),
	)
	client := &restify.Client{
		Handlers: handlers,
	}

Package metrics provides a Prometheus collector installed this way.
*/
package restify
