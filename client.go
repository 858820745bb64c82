// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ljtfreitas/java-restify-sub003/failure"
	"github.com/ljtfreitas/java-restify-sub003/request"
	"github.com/ljtfreitas/java-restify-sub003/retry"
	"github.com/ljtfreitas/java-restify-sub003/status"
	"github.com/ljtfreitas/java-restify-sub003/timeout"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Client is an HTTP client which retries failed attempts according to
// a retry.Configuration. Its zero value is a valid configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, makes a single attempt per plan, uses timeout.DefaultPolicy
// as the timeout policy, runs no event handlers and logs to
// slog.Default().
//
// Client's HTTPDoer typically has an internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines.
//
// On top of the HTTP request features provided by the HTTPDoer, Client
// reads and buffers the entire response body, maps client and server
// error statuses to a *failure.Error, retries failed attempts which
// match the retry conditions, and invokes event handlers at designated
// points of the attempt loop.
//
// Attempts of one plan are strictly sequential, and the backoff wait
// between them happens on the goroutine which called Do.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// Retry holds the retry settings shared by every plan executed by
	// the client. The settings of a plan's own Retry field take
	// precedence, as by retry.Merge.
	//
	// If Retry is nil, plans without their own settings are attempted
	// once.
	Retry *retry.Configuration
	// TimeoutPolicy specifies how to set timeouts on individual request
	// attempts.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request plan.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives the client's log records.
	//
	// If Logger is nil, slog.Default() is used.
	Logger *slog.Logger
	// Clock measures the retry timeout and performs the backoff wait.
	//
	// If Clock is nil, retry.SystemClock is used.
	Clock retry.Clock
}

// Do executes an HTTP request plan and returns the results, following
// the retry settings and timeout policy set on Client and the plan, and
// low-level policy set on the underlying HTTPDoer.
//
// The result returned is the result of the final attempt.
//
// An attempt fails if it ends in a transport error, in which case the
// error is a *url.Error, or if the response status is a client or
// server error, in which case the error is a *failure.Error holding the
// status, headers and body of the response. A failed attempt is retried
// only if it matches one of the retry conditions and the attempt budget
// and timeout allow. Otherwise Do returns the error of the final
// attempt.
//
// If the plan context is done before the execution ends, the returned
// error is a *url.Error which wraps both the context error and the
// error of the last attempt.
//
// The returned Execution is never nil. If an error was returned, the
// Err field of the Execution always references the same error.
func (c *Client) Do(p *request.Plan) (*request.Execution, error) {
	e := request.Execution{
		ID:   uuid.New(),
		Plan: p,
	}

	doer := c.doer()

	timeoutPolicy := c.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		"execution", e.ID,
		"method", p.Method,
		"url", p.URL.Redacted())

	cfg := retry.Merge(p.Retry, c.Retry)

	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()

	ctx := p.Context()
	err := retry.Run(ctx, cfg, func(ctx context.Context) error {
		return attempt(ctx, p, &e, doer, handlers, timeoutPolicy)
	},
		retry.WithClock(c.Clock),
		retry.WithLogger(logger),
		retry.WithOnRetry(func(_ int, _ error, wait time.Duration) {
			e.Wait = wait
			handlers.run(BeforeBackoff, &e)
		}))

	planCtxErr := ctx.Err()
	if planCtxErr == context.DeadlineExceeded {
		handlers.run(AfterPlanTimeout, &e)
	}
	if err != nil && planCtxErr != nil && errors.Is(err, planCtxErr) {
		err = urlErrorWrap(p, err)
	}
	e.Err = err
	e.Wait = 0

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	logger.Debug("execution ended",
		"attempts", e.Attempt,
		"status", e.StatusCode(),
		"duration", e.Duration(),
		"error", e.Err)
	return &e, e.Err
}

// attempt makes one attempt of the plan and records its result in e.
//
// The timeout policy sees the execution state left by the previous
// attempt, so it is consulted before that state is reset.
func attempt(ctx context.Context, p *request.Plan, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, timeoutPolicy timeout.Policy) error {
	d := timeoutPolicy.Timeout(e)

	e.Attempt++
	e.Response = nil
	e.Body = nil
	e.Err = nil
	e.Wait = 0

	sendAndReceive(ctx, d, p, e, doer, handlers)
	if e.Timeout() {
		e.AttemptTimeouts++
		handlers.run(AfterAttemptTimeout, e)
	}
	handlers.run(AfterAttempt, e)
	return e.Err
}

func sendAndReceive(ctx context.Context, d time.Duration, p *request.Plan, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	e.Request = p.ToRequest(ctx)
	handlers.run(BeforeAttempt, e)
	var err error
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
		return
	}
	readBody(p, e, handlers)
	if e.Err != nil {
		return
	}
	if code := status.Of(e.Response.StatusCode); code.IsError() {
		e.Err = failure.New(p.Target(), code, e.Response.Header, string(e.Body))
	}
}

func readBody(p *request.Plan, e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Body = nil
		e.Err = urlErrorWrap(p, err)
	}
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Get(url string) (*request.Execution, error) {
	return Get(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.NewPlan and request.BodyBytes, namely:
// string; []byte; io.Reader; and io.ReadCloser.
func (c *Client) Post(url, contentType string, body any) (*request.Execution, error) {
	return Post(c, url, contentType, body)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
