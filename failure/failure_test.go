// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ljtfreitas/java-restify-sub003/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	header := http.Header{
		"Content-Type": {"text/plain"},
		"X-Trace":      {"a", "b"},
	}
	t.Run("recognised codes", func(t *testing.T) {
		for code, kind := range kindCodes {
			t.Run(fmt.Sprintf("%d", code), func(t *testing.T) {
				err := New(Request{}, code, header, "body")
				require.NotNil(t, err)
				assert.Equal(t, kind, err.Kind)
				assert.Equal(t, code, err.Status)
				assert.Equal(t, code, err.Kind.Status())
				assert.Equal(t, header, err.Header)
				assert.Equal(t, "body", err.Body)
			})
		}
	})
	t.Run("404 is NotFound", func(t *testing.T) {
		err := New(Request{}, 404, header, "nope")
		assert.Equal(t, NotFound, err.Kind)
		assert.True(t, errors.Is(err, NotFound))
		assert.False(t, errors.Is(err, InternalServerError))
	})
	t.Run("500 is InternalServerError", func(t *testing.T) {
		err := New(Request{}, 500, nil, "")
		assert.Equal(t, InternalServerError, err.Kind)
	})
	t.Run("unrecognised codes are Unhandled", func(t *testing.T) {
		for _, code := range []status.Code{402, 418, 429, 499, 506, 511, 599} {
			err := New(Request{}, code, header, "spam")
			assert.Equal(t, Unhandled, err.Kind, "code %d", code)
			assert.Equal(t, code, err.Status)
			assert.Equal(t, header, err.Header)
			assert.Equal(t, "spam", err.Body)
			assert.True(t, errors.Is(err, Unhandled))
		}
	})
	t.Run("non-error status panics", func(t *testing.T) {
		for _, code := range []status.Code{0, 100, 200, 204, 302, 600} {
			assert.PanicsWithValue(t, fmt.Sprintf("restify/failure: status %d is not an error", code), func() {
				New(Request{}, code, nil, "")
			})
		}
	})
}

func TestError_Error(t *testing.T) {
	t.Run("known request", func(t *testing.T) {
		err := New(Request{Method: "GET", URL: "http://example.com/users/1"}, 404,
			http.Header{"Ham": {"eggs", "spam"}, "Foo": {"bar"}}, `{"error":"missing"}`)
		assert.Equal(t, "HTTP request GET http://example.com/users/1 failed with status 404 Not Found.\n"+
			"Headers: [Foo: bar; Ham: eggs, spam]\n"+
			`Body: {"error":"missing"}`, err.Error())
	})
	t.Run("unknown request and blank body", func(t *testing.T) {
		err := New(Request{}, 503, nil, "  \n")
		assert.Equal(t, "HTTP request failed with status 503 Service Unavailable.\n"+
			"Headers: []\n"+
			"Body: (empty)", err.Error())
	})
	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("call failed: %w", New(Request{}, 409, nil, ""))
		var fe *Error
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, Conflict, fe.Kind)
		assert.True(t, errors.Is(err, Conflict))
	})
}

func TestKind(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, int(kindSentinel))
	assert.Len(t, kindNames, int(kindSentinel))
	assert.Len(t, kindCodes, int(kindSentinel)-1)
	assert.Equal(t, Unhandled, kinds[0])
	assert.Equal(t, status.Code(0), Unhandled.Status())
	assert.Equal(t, "NotFound", NotFound.String())
	assert.Equal(t, "restify/failure: GatewayTimeout", GatewayTimeout.Error())
	assert.Equal(t, "Kind(99)", Kind(99).String())
	assert.Equal(t, status.Code(0), Kind(-1).Status())
	assert.Equal(t, BadGateway, KindOf(502))
	assert.Equal(t, Unhandled, KindOf(200))
}
