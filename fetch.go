// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restify

import (
	"context"
	"errors"
	"net/http"

	"github.com/ljtfreitas/java-restify-sub003/failure"
	"github.com/ljtfreitas/java-restify-sub003/outcome"
	"github.com/ljtfreitas/java-restify-sub003/request"
	"github.com/ljtfreitas/java-restify-sub003/retry"
)

// A Decoder converts a buffered response body into a value.
type Decoder[T any] func(body []byte, h http.Header) (T, error)

// String decodes the body as a string.
func String(body []byte, _ http.Header) (string, error) {
	return string(body), nil
}

// Bytes returns the body unchanged.
func Bytes(body []byte, _ http.Header) ([]byte, error) {
	return body, nil
}

// Fetch executes p with d and returns the result as an Outcome.
//
// A successful execution is decoded with decode into a Success. An
// execution which ended with a typed failure, such as a 404 response
// or a 503 response after all retries, yields a Failure the caller may
// recover from. Any other error, including a transport error, a
// cancellation or a decode error, is returned as the error.
func Fetch[T any](d Doer, p *request.Plan, decode Decoder[T]) (outcome.Outcome[T], error) {
	if decode == nil {
		panic("restify: nil decoder")
	}
	e, err := d.Do(p)
	if err != nil {
		if fe, ok := err.(*failure.Error); ok {
			return outcome.Failure[T](fe), nil
		}
		return outcome.Outcome[T]{}, err
	}
	body, err := decode(e.Body, e.Header())
	if err != nil {
		return outcome.Outcome[T]{}, err
	}
	return outcome.Success(outcome.Response[T]{
		Status: e.StatusCode(),
		Header: e.Header(),
		Body:   body,
	}), nil
}

// Execute runs attempt under the retry settings of cfg, as retry.Do
// does, and returns the result as an Outcome.
//
// A typed failure, whether returned directly or wrapped, becomes a
// Failure outcome. Any other error, such as an I/O failure,
// retry.ErrExhausted or a cancellation, is returned as the error.
func Execute[T any](ctx context.Context, attempt func(ctx context.Context) (outcome.Response[T], error), cfg *retry.Configuration, opts ...retry.Option) (outcome.Outcome[T], error) {
	r, err := retry.Do[outcome.Response[T]](ctx, cfg, attempt, opts...)
	if err == nil {
		return outcome.Success(r), nil
	}
	if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
		return outcome.Outcome[T]{}, err
	}
	var fe *failure.Error
	if errors.As(err, &fe) {
		return outcome.Failure[T](err), nil
	}
	return outcome.Outcome[T]{}, err
}
