// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"github.com/ljtfreitas/java-restify-sub003/failure"
	"github.com/ljtfreitas/java-restify-sub003/outcome"
)

// MaxCauseDepth bounds how many levels of wrapped causes a Matcher
// inspects. Cyclic cause chains therefore terminate, without a match.
const MaxCauseDepth = 32

// maxCauseVisits bounds the total number of errors inspected when
// causes fan out through Unwrap() []error.
const maxCauseVisits = 256

// A Matcher evaluates failures against one set of retry conditions.
//
// NewMatcher partitions the conditions by kind once. A Matcher holds
// no mutable state and is safe for concurrent use, but the retry loop
// creates a fresh one for each call.
type Matcher struct {
	statuses  []StatusCondition
	headers   []HeaderCondition
	responses []ResponseCondition
	causes    []CauseCondition
}

// NewMatcher constructs a Matcher for the given conditions.
func NewMatcher(conditions ...Condition) *Matcher {
	m := &Matcher{}
	for _, c := range conditions {
		switch x := c.(type) {
		case StatusCondition:
			m.statuses = appendNonNil(m.statuses, x)
		case HeaderCondition:
			m.headers = appendNonNil(m.headers, x)
		case ResponseCondition:
			m.responses = appendNonNil(m.responses, x)
		case CauseCondition:
			m.causes = appendNonNil(m.causes, x)
		case nil:
			panic("restify/retry: nil condition")
		}
	}
	return m
}

func appendNonNil[F StatusCondition | HeaderCondition | ResponseCondition | CauseCondition](fs []F, f F) []F {
	if f == nil {
		panic("restify/retry: nil condition")
	}
	return append(fs, f)
}

// Match reports whether err should be retried.
//
// If err is a typed HTTP failure (*failure.Error), it is evaluated
// against the status, header and response conditions. Otherwise the
// cause conditions are evaluated against err and then against each of
// its wrapped causes, one level at a time, up to MaxCauseDepth levels.
// A single satisfied condition of any kind is enough.
func (m *Matcher) Match(err error) bool {
	if err == nil {
		return false
	}

	if fe, ok := err.(*failure.Error); ok {
		return m.matchFailure(fe)
	}

	return m.matchCause(err)
}

func (m *Matcher) matchFailure(fe *failure.Error) bool {
	for _, c := range m.statuses {
		if c(fe.Status) {
			return true
		}
	}
	for _, c := range m.headers {
		if c(fe.Header) {
			return true
		}
	}
	if len(m.responses) > 0 {
		r := outcome.Response[string]{Status: fe.Status, Header: fe.Header, Body: fe.Body}
		for _, c := range m.responses {
			if c(r) {
				return true
			}
		}
	}
	return false
}

func (m *Matcher) matchCause(err error) bool {
	if len(m.causes) == 0 {
		return false
	}

	level := []error{err}
	visits := 0
	for depth := 0; depth < MaxCauseDepth && len(level) > 0; depth++ {
		var next []error
		for _, e := range level {
			if visits == maxCauseVisits {
				return false
			}
			visits++
			for _, c := range m.causes {
				if c(e) {
					return true
				}
			}
			switch x := e.(type) {
			case interface{ Unwrap() error }:
				if cause := x.Unwrap(); cause != nil {
					next = append(next, cause)
				}
			case interface{ Unwrap() []error }:
				for _, cause := range x.Unwrap() {
					if cause != nil {
						next = append(next, cause)
					}
				}
			}
		}
		level = next
	}
	return false
}
