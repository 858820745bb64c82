// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// A Category is the I/O failure category of an error, as reported by
// Categorize.
//
// Not means the error is not an I/O failure: it did not arise while
// moving bytes between client and server, so repeating the attempt is
// unlikely to change the result. Every other category is an I/O
// failure which may succeed on a later attempt.
type Category int

const (
	// Not indicates the error is not an I/O failure.
	Not Category = iota
	// Timeout indicates the error, or one of its wrapped causes, has a
	// Timeout method reporting true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (ECONNREFUSED), typically because the service is restarting.
	ConnRefused
	// ConnReset indicates the remote host reset an established
	// connection (ECONNRESET).
	ConnReset
	// ConnAborted indicates the connection was aborted locally
	// (ECONNABORTED).
	ConnAborted
	// BrokenPipe indicates a write to a connection the peer had
	// already closed (EPIPE).
	BrokenPipe
	// UnexpectedEOF indicates the connection closed in the middle of a
	// response (io.ErrUnexpectedEOF, or io.EOF wrapped in a network
	// error).
	UnexpectedEOF
	// Network indicates any other *net.OpError or *net.DNSError, such
	// as a DNS failure or an unreachable host.
	Network
	// categorySentinel provides the total number of categories.
	categorySentinel
)

var categoryNames = [...]string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"ConnAborted",
	"BrokenPipe",
	"UnexpectedEOF",
	"Network",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || c >= categorySentinel {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categorize returns the I/O failure category of err. A nil error
// yields Not.
//
// Categorize looks at the wrapped causes of err, not only err itself,
// and the first matching rule wins: Timeout, then the specific socket
// errors, then unexpected end of stream, then any *net.OpError or
// *net.DNSError.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNABORTED:
			return ConnAborted
		case syscall.EPIPE:
			return BrokenPipe
		}
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return UnexpectedEOF
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		if errors.Is(err, io.EOF) {
			return UnexpectedEOF
		}
		return Network
	}

	return Not
}

// IsIOFailure reports whether err belongs to any category other than
// Not.
func IsIOFailure(err error) bool {
	return Categorize(err) != Not
}

// CategorizeOne is like Categorize but examines err alone, without
// looking at its wrapped causes. It suits callers which walk the cause
// chain themselves.
func CategorizeOne(err error) Category {
	if err == nil {
		return Not
	}

	if t, ok := err.(hasTimeout); ok && t.Timeout() {
		return Timeout
	}

	if errno, ok := err.(syscall.Errno); ok {
		switch errno {
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNABORTED:
			return ConnAborted
		case syscall.EPIPE:
			return BrokenPipe
		}
		return Not
	}

	if err == io.ErrUnexpectedEOF {
		return UnexpectedEOF
	}

	switch x := err.(type) {
	case *net.OpError:
		if x.Err == io.EOF {
			return UnexpectedEOF
		}
		return Network
	case *net.DNSError:
		return Network
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
