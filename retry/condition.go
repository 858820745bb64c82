// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"reflect"

	"github.com/ljtfreitas/java-restify-sub003/outcome"
	"github.com/ljtfreitas/java-restify-sub003/status"
	"github.com/ljtfreitas/java-restify-sub003/transient"
)

// A Condition decides whether a failed attempt should be retried.
//
// There are exactly four kinds of Condition, one per func type in this
// package: StatusCondition, HeaderCondition and ResponseCondition look
// at typed HTTP failures (*failure.Error), while CauseCondition looks
// at any other error and its wrapped causes. A Matcher groups
// conditions by kind and ORs them together.
//
// Every Condition must be pure and safe for concurrent use by multiple
// goroutines.
type Condition interface {
	condition()
}

// A StatusCondition is a predicate over the status code of a typed
// HTTP failure.
type StatusCondition func(code status.Code) bool

// A CauseCondition is a predicate over one error value. The Matcher
// applies it to the failure and then to each wrapped cause in turn,
// so a CauseCondition should examine only the error it is given and
// not unwrap it.
type CauseCondition func(err error) bool

// A HeaderCondition is a predicate over the headers of a typed HTTP
// failure.
type HeaderCondition func(header http.Header) bool

// A ResponseCondition is a predicate over the whole response of a
// typed HTTP failure, with the body as a string.
type ResponseCondition func(r outcome.Response[string]) bool

func (StatusCondition) condition()   {}
func (CauseCondition) condition()    {}
func (HeaderCondition) condition()   {}
func (ResponseCondition) condition() {}

// Any4xx is a status condition matching every client error (4XX).
var Any4xx StatusCondition = status.Code.IsClientError

// Any5xx is a status condition matching every server error (5XX).
var Any5xx StatusCondition = status.Code.IsServerError

// IOFailure is a cause condition matching transport-level I/O failures
// (timeouts, refused or reset connections, broken pipes, truncated
// responses and other network errors) as classified by package
// transient. Used inside a Matcher it also matches failures whose
// wrapped causes are I/O failures.
var IOFailure CauseCondition = ioFailure

// Or composes two status conditions into one which is true if either
// is true. Short-circuit logic is used, so g is not evaluated if f
// returns true.
func (f StatusCondition) Or(g StatusCondition) StatusCondition {
	return func(code status.Code) bool {
		return f(code) || g(code)
	}
}

// Or composes two cause conditions into one which is true if either is
// true.
func (f CauseCondition) Or(g CauseCondition) CauseCondition {
	return func(err error) bool {
		return f(err) || g(err)
	}
}

// Or composes two header conditions into one which is true if either
// is true.
func (f HeaderCondition) Or(g HeaderCondition) HeaderCondition {
	return func(header http.Header) bool {
		return f(header) || g(header)
	}
}

// Or composes two response conditions into one which is true if either
// is true.
func (f ResponseCondition) Or(g ResponseCondition) ResponseCondition {
	return func(r outcome.Response[string]) bool {
		return f(r) || g(r)
	}
}

// StatusIn constructs a status condition matching any of the given
// status codes.
func StatusIn(codes ...status.Code) StatusCondition {
	set := make(map[status.Code]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return func(code status.Code) bool {
		_, ok := set[code]
		return ok
	}
}

// CauseIs constructs a cause condition matching an error equal to any
// of targets, or whose Is method reports true for any of them.
//
// Because failure.Kind values are errors, CauseIs also matches wrapped
// typed failures by kind:
//
//	retry.CauseIs(failure.ServiceUnavailable)
func CauseIs(targets ...error) CauseCondition {
	ts := make([]error, 0, len(targets))
	canCompare := make([]bool, 0, len(targets))
	for _, target := range targets {
		if target == nil {
			panic("restify/retry: nil cause")
		}
		ts = append(ts, target)
		canCompare = append(canCompare, reflect.TypeOf(target).Comparable())
	}
	return func(err error) bool {
		for i, target := range ts {
			if canCompare[i] && err == target {
				return true
			}
			if x, ok := err.(interface{ Is(error) bool }); ok && x.Is(target) {
				return true
			}
		}
		return false
	}
}

// CauseAs constructs a cause condition matching any error whose
// dynamic type is E. For example, to retry on any *net.DNSError
// anywhere in the cause chain:
//
//	retry.CauseAs[*net.DNSError]()
func CauseAs[E error]() CauseCondition {
	return func(err error) bool {
		_, ok := err.(E)
		return ok
	}
}

// HeaderPresent constructs a header condition matching when the named
// header has at least one value.
func HeaderPresent(name string) HeaderCondition {
	return func(header http.Header) bool {
		return len(header.Values(name)) > 0
	}
}

// HeaderEquals constructs a header condition matching when any value
// of the named header equals value.
func HeaderEquals(name, value string) HeaderCondition {
	return func(header http.Header) bool {
		for _, v := range header.Values(name) {
			if v == value {
				return true
			}
		}
		return false
	}
}

func ioFailure(err error) bool {
	return transient.CategorizeOne(err) != transient.Not
}
