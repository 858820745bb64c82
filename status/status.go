// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package status classifies numeric HTTP status codes.
//
// A Code is a plain integer with predicates attached, so it can be
// converted to and from the int status codes used by net/http at no
// cost:
//
//	c := status.Code(resp.StatusCode)
//	if c.IsServerError() {
//		...
//	}
package status

import (
	"net/http"
	"strconv"
)

// A Code is an HTTP response status code.
type Code int

// Of converts an int status code, typically http.Response.StatusCode,
// into a Code.
func Of(code int) Code {
	return Code(code)
}

// Int returns the status code as an int.
func (c Code) Int() int {
	return int(c)
}

// IsInformational reports whether c is in the 1XX range.
func (c Code) IsInformational() bool {
	return c >= 100 && c < 200
}

// IsSuccessful reports whether c is in the 2XX range.
func (c Code) IsSuccessful() bool {
	return c >= 200 && c < 300
}

// IsRedirection reports whether c is in the 3XX range.
func (c Code) IsRedirection() bool {
	return c >= 300 && c < 400
}

// IsClientError reports whether c is in the 4XX range.
func (c Code) IsClientError() bool {
	return c >= 400 && c < 500
}

// IsServerError reports whether c is in the 5XX range.
func (c Code) IsServerError() bool {
	return c >= 500 && c < 600
}

// IsError reports whether c is either a client error or a server error.
func (c Code) IsError() bool {
	return c.IsClientError() || c.IsServerError()
}

// String returns the numeric code followed by its standard reason
// phrase, for example "404 Not Found". Codes without a standard
// reason phrase are rendered as the bare number.
func (c Code) String() string {
	s := strconv.Itoa(int(c))
	if text := http.StatusText(int(c)); text != "" {
		return s + " " + text
	}
	return s
}
