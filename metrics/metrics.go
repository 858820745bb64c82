// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics records Prometheus metrics about the plans a
// restify.Client executes.
//
//	reg := prometheus.NewRegistry()
//	handlers := &restify.HandlerGroup{}
//	metrics.New(reg).Install(handlers)
//	client := &restify.Client{Handlers: handlers}
package metrics

import (
	restify "github.com/ljtfreitas/java-restify-sub003"
	"github.com/ljtfreitas/java-restify-sub003/failure"
	"github.com/ljtfreitas/java-restify-sub003/request"
	"github.com/prometheus/client_golang/prometheus"
)

// Values of the result label of the executions counter.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// A Collector counts executions, attempts, retries and typed failures.
// A nil *Collector is valid and records nothing.
type Collector struct {
	executions *prometheus.CounterVec
	attempts   *prometheus.CounterVec
	retries    *prometheus.CounterVec
	failures   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates a Collector and registers its metrics with reg. It
// returns nil if reg is nil, and panics if the metrics are already
// registered with reg.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		return nil
	}

	c := &Collector{
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restify_executions_total",
				Help: "Total number of plan executions by method and result",
			},
			[]string{"method", "result"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restify_attempts_total",
				Help: "Total number of attempts by method",
			},
			[]string{"method"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restify_retries_total",
				Help: "Total number of retries by method",
			},
			[]string{"method"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restify_failures_total",
				Help: "Total number of executions ended by a typed failure, by failure kind",
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "restify_execution_duration_seconds",
				Help:    "Plan execution duration in seconds, including retries and backoff",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	reg.MustRegister(
		c.executions,
		c.attempts,
		c.retries,
		c.failures,
		c.duration,
	)

	return c
}

// Install adds c to the handler chains of g for the events it records.
// Install does nothing if c or g is nil.
func (c *Collector) Install(g *restify.HandlerGroup) {
	if c == nil || g == nil {
		return
	}
	g.PushBack(restify.AfterAttempt, c)
	g.PushBack(restify.BeforeBackoff, c)
	g.PushBack(restify.AfterExecutionEnd, c)
}

// Handle records the event.
func (c *Collector) Handle(evt restify.Event, e *request.Execution) {
	if c == nil {
		return
	}
	method := e.Plan.Method
	switch evt {
	case restify.AfterAttempt:
		c.attempts.WithLabelValues(method).Inc()
	case restify.BeforeBackoff:
		c.retries.WithLabelValues(method).Inc()
	case restify.AfterExecutionEnd:
		result := ResultSuccess
		if fe, ok := e.Err.(*failure.Error); ok {
			result = ResultFailure
			c.failures.WithLabelValues(fe.Kind.String()).Inc()
		} else if e.Err != nil {
			result = ResultError
		}
		c.executions.WithLabelValues(method, result).Inc()
		c.duration.WithLabelValues(method).Observe(e.Duration().Seconds())
	}
}
