// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/ljtfreitas/java-restify-sub003/status"
)

// EmptyBody is the placeholder written into a failure message in place
// of a blank response body.
const EmptyBody = "(empty)"

// A Request identifies the logical request whose attempt failed. The
// zero value means the request is unknown.
type Request struct {
	// Method is the HTTP method, for example "GET".
	Method string
	// URL is the request target.
	URL string
}

func (r Request) known() bool {
	return r.Method != "" || r.URL != ""
}

// An Error is a typed HTTP failure: a response whose status code is a
// client or server error.
//
// Use errors.As to obtain the Error from a returned error, and
// errors.Is with a Kind to test for a specific taxonomy member.
type Error struct {
	// Kind is the taxonomy member selected from Status.
	Kind Kind
	// Status is the response status code. It is always an error
	// status.
	Status status.Code
	// Header contains the response headers, exactly as received.
	Header http.Header
	// Body is the raw response body. It may be empty.
	Body string
	// Request identifies the request which failed, if known.
	Request Request
}

// New constructs the typed failure for an error response.
//
// The Kind is chosen from code by a total lookup: each recognised code
// has a dedicated Kind and every other code yields Unhandled. The
// header and body are kept verbatim.
//
// New panics if code is not a client or server error status.
func New(req Request, code status.Code, header http.Header, body string) *Error {
	if !code.IsError() {
		panic(fmt.Sprintf("restify/failure: status %d is not an error", int(code)))
	}

	return &Error{
		Kind:    KindOf(code),
		Status:  code,
		Header:  header,
		Body:    body,
		Request: req,
	}
}

// Error returns an informational description of the failure. The
// format is not stable and must not be parsed.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("HTTP request ")
	if e.Request.known() {
		b.WriteString(strings.TrimSpace(e.Request.Method + " " + e.Request.URL))
		b.WriteByte(' ')
	}
	b.WriteString("failed with status ")
	b.WriteString(e.Status.String())
	b.WriteString(".\nHeaders: ")
	b.WriteString(formatHeader(e.Header))
	b.WriteString("\nBody: ")
	if strings.TrimSpace(e.Body) == "" {
		b.WriteString(EmptyBody)
	} else {
		b.WriteString(e.Body)
	}
	return b.String()
}

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func formatHeader(h http.Header) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + strings.Join(h[k], ", ")
	}
	return "[" + strings.Join(parts, "; ") + "]"
}
