// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, Not},
		{"plain", errors.New("foo"), Not},
		{"empty wrapper", wrapper{}, Not},
		{"wrapped plain", wrapper{errors.New("bar")}, Not},
		{"bare EOF", io.EOF, Not},
		{"ETIMEDOUT", syscall.ETIMEDOUT, Timeout},
		{"timeout", timeout{}, Timeout},
		{"url.Error ETIMEDOUT", &url.Error{Err: syscall.ETIMEDOUT}, Timeout},
		{"url.Error timeout", &url.Error{Err: timeout{}}, Timeout},
		{"nested timeout", wrapper{wrapper{timeout{}}}, Timeout},
		{"timeout wins over reset", timeoutWrapper{true, syscall.ECONNRESET}, Timeout},
		{"ECONNRESET", syscall.ECONNRESET, ConnReset},
		{"wrapped ECONNRESET", wrapper{syscall.ECONNRESET}, ConnReset},
		{"non-timeout ECONNRESET", timeoutWrapper{false, syscall.ECONNRESET}, ConnReset},
		{"ECONNREFUSED", syscall.ECONNREFUSED, ConnRefused},
		{"deep ECONNREFUSED", &url.Error{Err: wrapper{timeoutWrapper{false, syscall.ECONNREFUSED}}}, ConnRefused},
		{"ECONNABORTED", syscall.ECONNABORTED, ConnAborted},
		{"EPIPE", &net.OpError{Op: "write", Err: syscall.EPIPE}, BrokenPipe},
		{"unexpected EOF", io.ErrUnexpectedEOF, UnexpectedEOF},
		{"wrapped unexpected EOF", fmt.Errorf("read body: %w", io.ErrUnexpectedEOF), UnexpectedEOF},
		{"EOF from net", &net.OpError{Op: "read", Err: io.EOF}, UnexpectedEOF},
		{"DNS", &net.DNSError{Err: "no such host", Name: "nowhere.invalid"}, Network},
		{"EHOSTUNREACH", &net.OpError{Op: "dial", Err: syscall.EHOSTUNREACH}, Network},
		{"bare EHOSTUNREACH", syscall.EHOSTUNREACH, Not},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, Categorize(testCase.err))
			assert.Equal(t, testCase.want != Not, IsIOFailure(testCase.err))
		})
	}
}

func TestCategorizeOne(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, Not},
		{"plain", errors.New("foo"), Not},
		{"timeout", timeout{}, Timeout},
		{"ETIMEDOUT", syscall.ETIMEDOUT, Timeout},
		{"ECONNREFUSED", syscall.ECONNREFUSED, ConnRefused},
		{"ECONNRESET", syscall.ECONNRESET, ConnReset},
		{"ECONNABORTED", syscall.ECONNABORTED, ConnAborted},
		{"EPIPE", syscall.EPIPE, BrokenPipe},
		{"bare EHOSTUNREACH", syscall.EHOSTUNREACH, Not},
		{"unexpected EOF", io.ErrUnexpectedEOF, UnexpectedEOF},
		{"EOF from net", &net.OpError{Op: "read", Err: io.EOF}, UnexpectedEOF},
		{"OpError", &net.OpError{Op: "write", Err: syscall.EPIPE}, Network},
		{"DNS", &net.DNSError{Err: "no such host", Name: "nowhere.invalid"}, Network},
		{"wrapped timeout", wrapper{timeout{}}, Not},
		{"wrapped ECONNRESET", wrapper{syscall.ECONNRESET}, Not},
		{"wrapped unexpected EOF", fmt.Errorf("read body: %w", io.ErrUnexpectedEOF), Not},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, CategorizeOne(testCase.err))
		})
	}
}

func TestCategory_String(t *testing.T) {
	assert.Len(t, categoryNames, int(categorySentinel))
	assert.Equal(t, "Not", Not.String())
	assert.Equal(t, "ConnReset", ConnReset.String())
	assert.Equal(t, "Network", Network.String())
	assert.Equal(t, "Unknown", Category(-1).String())
	assert.Equal(t, "Unknown", categorySentinel.String())
}

type timeout struct{}

func (err timeout) Error() string {
	return "timeout"
}

func (_ timeout) Timeout() bool {
	return true
}

type wrapper struct {
	wrappedError error
}

func (err wrapper) Error() string {
	return fmt.Sprintf("wrapper - wraps %v", err.wrappedError)
}

func (err wrapper) Unwrap() error {
	return err.wrappedError
}

type timeoutWrapper struct {
	timeout      bool
	wrappedError error
}

func (err timeoutWrapper) Error() string {
	return fmt.Sprintf("timeoutWrapper - timeout %t, wraps %v", err.timeout, err.wrappedError)
}

func (err timeoutWrapper) Timeout() bool {
	return err.timeout
}

func (err timeoutWrapper) Unwrap() error {
	return err.wrappedError
}
