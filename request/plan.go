// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"github.com/ljtfreitas/java-restify-sub003/failure"
	"github.com/ljtfreitas/java-restify-sub003/retry"
	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "restify/request: nil context"
)

// A Plan is a logical HTTP request: the description of the request to
// send on every attempt, together with the retry settings which apply
// to this call only.
//
// A Plan holds a pre-buffered body so that every attempt sends the same
// bytes.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields.
	Header http.Header

	// Body is the request body. A nil or empty Body means no body.
	Body []byte

	// Host optionally overrides the Host header to send.
	Host string

	// Retry holds the retry settings declared for this call. A client
	// merges them over its own settings, each field set here taking
	// precedence. A nil Retry means the client settings apply
	// unchanged.
	Retry *retry.Configuration

	ctx context.Context
}

// NewPlan creates a new Plan with context.Background.
//
// The body may be nil, a string, a []byte, an io.Reader or an
// io.ReadCloser, and is read fully before NewPlan returns. See
// BodyBytes.
func NewPlan(method, url string, body any) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, body)
}

// NewPlanWithContext creates a new Plan with the given context. The
// context bounds the whole execution of the plan, including all of its
// attempts and the waits between them.
//
// An empty method means GET.
func NewPlanWithContext(ctx context.Context, method, url string, body any) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !httpguts.ValidHeaderFieldName(method) {
		return nil, fmt.Errorf("restify/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// Context returns the plan's context, which is context.Background if
// none was set.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx. It panics if ctx is nil.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// WithRetry returns a shallow copy of p with its retry settings
// changed to c.
func (p *Plan) WithRetry(c *retry.Configuration) *Plan {
	p2 := new(Plan)
	*p2 = *p
	p2.Retry = c
	return p2
}

// SetBasicAuth sets the plan's Authorization header to use HTTP Basic
// Authentication with the provided username and password.
func (p *Plan) SetBasicAuth(username, password string) {
	auth := username + ":" + password
	p.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(auth)))
}

// Target identifies the plan in typed failures.
func (p *Plan) Target() failure.Request {
	r := failure.Request{Method: p.Method}
	if p.URL != nil {
		r.URL = p.URL.String()
	}
	return r
}

// ToRequest builds the http.Request for one attempt of the plan. The
// request shares the plan's URL and Header, and reads its body from
// the plan's Body.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := (&http.Request{
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Method:     p.Method,
		URL:        p.URL,
		Header:     p.Header,
		Host:       p.Host,
	}).WithContext(ctx)
	if len(p.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	return r
}

// removeEmptyPort strips the empty port in "host:" as mandated by
// RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if strings.LastIndex(host, ":") > strings.LastIndex(host, "]") {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
