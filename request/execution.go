// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ljtfreitas/java-restify-sub003/failure"
	"github.com/ljtfreitas/java-restify-sub003/status"
	"github.com/ljtfreitas/java-restify-sub003/transient"
)

// An Execution represents the state of a single Plan execution.
//
// The client creates an Execution when it starts executing a plan,
// updates it as attempts are made, and returns it when the execution
// ends. Timeout policies and event handlers receive the same Execution
// and may keep their own data on it with SetValue and Value, but should
// otherwise treat its fields as read-only. Changing the http.Request
// before it is sent, for example to sign it, is the one reasonable
// exception.
type Execution struct {
	// ID uniquely identifies the execution, for example in logs.
	ID uuid.UUID

	// Plan specifies the HTTP request plan being executed. It is never
	// nil.
	Plan *Plan

	// Start is the start time of the execution.
	Start time.Time

	// End is the end time of the execution. It is zero until the
	// execution ends.
	End time.Time

	// Attempt is the number of the current attempt, counting from one.
	// Once the execution has ended it is the number of attempts made.
	// It is zero only before the first attempt starts.
	Attempt int

	// AttemptTimeouts counts the attempts which ended because the
	// attempt timeout expired.
	AttemptTimeouts int

	// Wait is the backoff wait before the next attempt. It is set
	// before the wait begins and is zero at all other times.
	Wait time.Duration

	// Request is the HTTP request of the current or most recent
	// attempt.
	Request *http.Request

	// Response is the HTTP response received in the most recent
	// attempt. It is nil if that attempt ended in a transport error or
	// is still underway.
	Response *http.Response

	// Err is the error which ended the most recent attempt, or nil.
	//
	// It is a *url.Error when the attempt failed in transport or while
	// reading the body, and a *failure.Error when the response status
	// was a client or server error. Once the execution has ended, Err
	// equals the error returned by the client.
	Err error

	// Body is the complete response body read in the most recent
	// attempt.
	Body []byte

	data context.Context
}

// StatusCode returns the status code of the most recent response, or
// zero if there is none.
func (e *Execution) StatusCode() status.Code {
	if e.Response == nil {
		return 0
	}
	return status.Of(e.Response.StatusCode)
}

// Header returns the headers of the most recent response, or nil if
// there is none.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}
	return e.Response.Header
}

// Failure returns the typed failure held in Err, or nil if Err does not
// hold one.
func (e *Execution) Failure() *failure.Error {
	var fe *failure.Error
	if errors.As(e.Err, &fe) {
		return fe
	}
	return nil
}

// Duration returns the duration of the execution: zero before it
// starts, the time since Start while it runs, and End minus Start after
// it ends.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return 0
	} else if !e.Ended() {
		return time.Since(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout indicates whether Err is a timeout, either of the current
// attempt or of the whole plan.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue stores arbitrary data on the execution. The key follows the
// rules of context.WithValue: it must be comparable and should be of a
// type private to the caller's package.
func (e *Execution) SetValue(key, value any) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}
	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data stored for key, or nil.
func (e *Execution) Value(key any) any {
	if e.data == nil {
		return nil
	}
	return e.data.Value(key)
}
