// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	restify "github.com/ljtfreitas/java-restify-sub003"
	"github.com/ljtfreitas/java-restify-sub003/config"
	"github.com/ljtfreitas/java-restify-sub003/metrics"
	"github.com/ljtfreitas/java-restify-sub003/request"
	"github.com/ljtfreitas/java-restify-sub003/retry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
)

// errFailed is returned when the request ended with a typed failure,
// which has already been printed.
var errFailed = errors.New("request failed")

func newGetCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get URL",
		Short: "Issue a GET request and print the response body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), cmd, o, args[0])
		},
	}
}

func runGet(ctx context.Context, cmd *cobra.Command, o *options, url string) error {
	logger := newLogger(cmd.ErrOrStderr(), o.debug)

	cfg, err := resolveRetry(cmd, o)
	if err != nil {
		return err
	}
	backoff := cfg.Backoff()
	logger.Debug("retry settings",
		"attempts", cfg.Attempts(),
		"timeout", cfg.Timeout(),
		"first_wait", backoff.Wait(1),
		"last_wait", backoff.Wait(cfg.Attempts()-1))

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if o.http2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return fmt.Errorf("failed to configure HTTP/2: %w", err)
		}
	}

	handlers := &restify.HandlerGroup{}
	var reg *prometheus.Registry
	if o.metrics {
		reg = prometheus.NewRegistry()
		metrics.New(reg).Install(handlers)
	}

	cl := &restify.Client{
		HTTPDoer: &http.Client{Transport: transport},
		Retry:    cfg,
		Handlers: handlers,
		Logger:   logger,
	}
	defer cl.CloseIdleConnections()

	p, err := request.NewPlanWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	result, err := restify.Fetch(cl, p, restify.Bytes)
	if reg != nil {
		logMetrics(logger, reg)
	}
	if err != nil {
		return err
	}
	if fe := result.Cause(); fe != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), fe.Error())
		return errFailed
	}

	body, _ := result.Body()
	_, err = cmd.OutOrStdout().Write(body)
	return err
}

// resolveRetry combines the configuration file, if any, with the retry
// flags, which take precedence.
func resolveRetry(cmd *cobra.Command, o *options) (*retry.Configuration, error) {
	var fallback *retry.Configuration
	if o.cfgPath != "" {
		f, err := config.Load(o.cfgPath)
		if err != nil {
			return nil, err
		}
		if fallback, err = f.Configuration(o.call); err != nil {
			return nil, err
		}
	} else if o.call != "" {
		return nil, errors.New("--call requires --config")
	}

	var m retry.Metadata
	flags := cmd.Flags()
	if flags.Changed("attempts") {
		if o.attempts < 1 {
			return nil, fmt.Errorf("invalid --attempts %d", o.attempts)
		}
		m.Attempts = o.attempts
	}
	if flags.Changed("timeout") {
		m.Timeout = o.timeout
	}
	if flags.Changed("delay") {
		m.Backoff = &retry.BackoffMetadata{Delay: retry.Delay(o.delay)}
	}
	m.Status = o.status
	m.On4xx = o.on4xx
	m.On5xx = o.on5xx
	m.OnIOFailure = o.onIO
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return retry.Merge(m.Configuration(), fallback), nil
}

func logMetrics(logger *slog.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			attrs := []any{"name", mf.GetName(), "value", m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			logger.Info("metric", attrs...)
		}
	}
}
