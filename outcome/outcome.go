// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package outcome

import (
	"errors"
	"net/http"

	"github.com/ljtfreitas/java-restify-sub003/failure"
	"github.com/ljtfreitas/java-restify-sub003/status"
)

// A Response is a successful HTTP response with a decoded body.
type Response[T any] struct {
	Status status.Code
	Header http.Header
	Body   T
}

// An Outcome is the result of one logical call after all retries: either
// a Success holding a Response, or a Failure holding the error which
// ended the call.
//
// The zero value is not a valid Outcome. Construct one with Success or
// Failure. Outcomes are immutable, and every combinator returns a new
// Outcome.
type Outcome[T any] struct {
	resp Response[T]
	err  error
}

// Success constructs a successful Outcome from r.
func Success[T any](r Response[T]) Outcome[T] {
	return Outcome[T]{resp: r}
}

// Failure constructs a failed Outcome from err. It panics if err is nil.
func Failure[T any](err error) Outcome[T] {
	if err == nil {
		panic("restify/outcome: nil error")
	}
	return Outcome[T]{err: err}
}

// IsSuccess reports whether o is a Success.
func (o Outcome[T]) IsSuccess() bool {
	return o.err == nil
}

// IsFailure reports whether o is a Failure.
func (o Outcome[T]) IsFailure() bool {
	return o.err != nil
}

// Status returns the response status. For a Failure it is the status of
// the typed failure cause, or zero if the cause is not a typed failure.
func (o Outcome[T]) Status() status.Code {
	if o.err == nil {
		return o.resp.Status
	}
	if cause := o.Cause(); cause != nil {
		return cause.Status
	}
	return 0
}

// Header returns the response headers. For a Failure they are the
// headers of the typed failure cause, or nil if the cause is not a
// typed failure.
func (o Outcome[T]) Header() http.Header {
	if o.err == nil {
		return o.resp.Header
	}
	if cause := o.Cause(); cause != nil {
		return cause.Header
	}
	return nil
}

// Body returns the response body of a Success. For a Failure it returns
// the zero value of T together with the failure's error.
func (o Outcome[T]) Body() (T, error) {
	if o.err != nil {
		var zero T
		return zero, o.err
	}
	return o.resp.Body, nil
}

// Response returns the successful response and true, or the zero
// Response and false for a Failure.
func (o Outcome[T]) Response() (Response[T], bool) {
	return o.resp, o.err == nil
}

// Err returns the error of a Failure, or nil for a Success.
func (o Outcome[T]) Err() error {
	return o.err
}

// Cause returns the typed failure of a Failure, found with errors.As,
// or nil if o is a Success or its error is not a typed failure.
func (o Outcome[T]) Cause() *failure.Error {
	var fe *failure.Error
	if o.err != nil && errors.As(o.err, &fe) {
		return fe
	}
	return nil
}

// Recover attempts to turn a Failure back into a Success.
//
// A Success, or a Failure whose error is not a typed failure, is
// returned unchanged and fn is not called. Otherwise fn is called with
// the typed failure. If fn returns a value, the result is a Success with
// that body and the status and headers of the failure. If fn returns an
// error, the result is a Failure with that error.
func (o Outcome[T]) Recover(fn func(*failure.Error) (T, error)) Outcome[T] {
	return o.RecoverIf(func(*failure.Error) bool { return true }, fn)
}

// RecoverIf is like Recover but only calls fn when pred reports true
// for the typed failure. Otherwise o is returned unchanged.
func (o Outcome[T]) RecoverIf(pred func(*failure.Error) bool, fn func(*failure.Error) (T, error)) Outcome[T] {
	if o.err == nil {
		return o
	}
	cause := o.Cause()
	if cause == nil || !pred(cause) {
		return o
	}
	body, err := fn(cause)
	if err != nil {
		return Failure[T](err)
	}
	return Success(Response[T]{Status: cause.Status, Header: cause.Header, Body: body})
}

// RecoverKind is like Recover but only calls fn when the typed failure
// is of the given kind.
//
//	o = o.RecoverKind(failure.NotFound, func(*failure.Error) (string, error) {
//		return "", nil
//	})
func (o Outcome[T]) RecoverKind(kind failure.Kind, fn func(*failure.Error) (T, error)) Outcome[T] {
	return o.RecoverIf(func(fe *failure.Error) bool { return fe.Kind == kind }, fn)
}
