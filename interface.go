// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restify

import (
	"github.com/ljtfreitas/java-restify-sub003/request"
)

// Doer executes a request plan, retrying it as its retry settings
// allow, and returns the state of the last attempt.
//
// An error status which ends the execution is returned as a
// *failure.Error. Client is the Doer of this package, and Fetch turns
// the result of any Doer into an Outcome.
type Doer interface {
	Do(p *request.Plan) (*request.Execution, error)
}

// Getter issues a GET to a URL under the retry settings of its Doer.
//
// Get emulates a Getter on top of any Doer.
type Getter interface {
	Get(url string) (*request.Execution, error)
}

// Poster issues a POST to a URL under the retry settings of its Doer.
//
// Post emulates a Poster on top of any Doer.
type Poster interface {
	Post(url, contentType string, body any) (*request.Execution, error)
}

// IdleCloser closes the idle keep-alive connections of its transport,
// leaving connections in use alone.
type IdleCloser interface {
	CloseIdleConnections()
}

// Get builds a GET plan for url and executes it with d.
func Get(d Doer, url string) (*request.Execution, error) {
	p, err := request.NewPlan("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(p)
}

// Post builds a POST plan for url carrying body, typed as contentType,
// and executes it with d. The body may be nil or any type accepted by
// request.BodyBytes.
func Post(d Doer, url, contentType string, body any) (*request.Execution, error) {
	p, err := request.NewPlan("POST", url, body)
	if err != nil {
		return nil, err
	}
	p.Header.Set("Content-Type", contentType)
	return d.Do(p)
}
