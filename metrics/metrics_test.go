// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	restify "github.com/ljtfreitas/java-restify-sub003"
	"github.com/ljtfreitas/java-restify-sub003/failure"
	"github.com/ljtfreitas/java-restify-sub003/request"
	"github.com/ljtfreitas/java-restify-sub003/retry"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("nil registerer", func(t *testing.T) {
		c := New(nil)
		assert.Nil(t, c)
		g := &restify.HandlerGroup{}
		c.Install(g)
		c.Handle(restify.AfterExecutionEnd, &request.Execution{})
	})
	t.Run("duplicate registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		New(reg)
		assert.Panics(t, func() { New(reg) })
	})
	t.Run("nil group", func(t *testing.T) {
		New(prometheus.NewRegistry()).Install(nil)
	})
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := &restify.HandlerGroup{}
	New(reg).Install(g)

	responses := []*http.Response{
		response(503), response(503), response(200),
		response(404),
		response(500), response(500), response(500),
	}
	var i int
	cl := &restify.Client{
		HTTPDoer: doerFunc(func(*http.Request) (*http.Response, error) {
			if i == len(responses) {
				return nil, errors.New("no more responses")
			}
			i++
			return responses[i-1], nil
		}),
		Retry:    retry.NewBuilder().Attempts(3).When(retry.Any5xx).Delay(time.Millisecond).Build(),
		Handlers: g,
	}
	for _, method := range []string{"GET", "GET", "PUT", "GET"} {
		p, err := request.NewPlan(method, "http://example.com", nil)
		require.NoError(t, err)
		_, _ = cl.Do(p)
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	assert.Equal(t, 1.0, counter(t, families, "restify_executions_total", "method", "GET", "result", ResultSuccess))
	assert.Equal(t, 1.0, counter(t, families, "restify_executions_total", "method", "GET", "result", ResultFailure))
	assert.Equal(t, 1.0, counter(t, families, "restify_executions_total", "method", "PUT", "result", ResultFailure))
	assert.Equal(t, 1.0, counter(t, families, "restify_executions_total", "method", "GET", "result", ResultError))
	assert.Equal(t, 5.0, counter(t, families, "restify_attempts_total", "method", "GET"))
	assert.Equal(t, 3.0, counter(t, families, "restify_attempts_total", "method", "PUT"))
	assert.Equal(t, 2.0, counter(t, families, "restify_retries_total", "method", "GET"))
	assert.Equal(t, 2.0, counter(t, families, "restify_retries_total", "method", "PUT"))
	assert.Equal(t, 1.0, counter(t, families, "restify_failures_total", "kind", failure.NotFound.String()))
	assert.Equal(t, 1.0, counter(t, families, "restify_failures_total", "kind", failure.InternalServerError.String()))

	h := find(t, families, "restify_execution_duration_seconds", "method", "GET").GetHistogram()
	require.NotNil(t, h)
	assert.Equal(t, uint64(3), h.GetSampleCount())
}

func response(code int) *http.Response {
	return &http.Response{
		StatusCode: code,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(http.StatusText(code))),
	}
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) {
	return f(r)
}

func counter(t *testing.T, families []*dto.MetricFamily, name string, labels ...string) float64 {
	m := find(t, families, name, labels...)
	require.NotNil(t, m.GetCounter(), "%s is not a counter", name)
	return m.GetCounter().GetValue()
}

func find(t *testing.T, families []*dto.MetricFamily, name string, labels ...string) *dto.Metric {
	want := map[string]string{}
	for i := 0; i+1 < len(labels); i += 2 {
		want[labels[i]] = labels[i+1]
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if v, ok := want[lp.GetName()]; ok && v != lp.GetValue() {
					continue metrics
				}
			}
			return m
		}
	}
	require.Failf(t, "metric not found", "%s %v", name, want)
	return nil
}
