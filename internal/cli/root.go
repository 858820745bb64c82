// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the restify command.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

type options struct {
	cfgPath  string
	call     string
	attempts int
	timeout  time.Duration
	delay    time.Duration
	status   []int
	on4xx    bool
	on5xx    bool
	onIO     bool
	debug    bool
	http2    bool
	metrics  bool
}

// NewRootCommand returns the restify command with its subcommands.
func NewRootCommand() *cobra.Command {
	o := &options{}
	rootCmd := &cobra.Command{
		Use:   "restify",
		Short: "Resilient HTTP requests",
		Long: `restify issues HTTP requests and retries failed attempts according to
retry settings taken from flags or from a YAML configuration file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.cfgPath, "config", "", "retry configuration file")
	rootCmd.PersistentFlags().StringVar(&o.call, "call", "", "name of the call in the configuration file")
	rootCmd.PersistentFlags().IntVar(&o.attempts, "attempts", 0, "maximum number of attempts")
	rootCmd.PersistentFlags().DurationVar(&o.timeout, "timeout", 0, "time budget for starting new attempts")
	rootCmd.PersistentFlags().DurationVar(&o.delay, "delay", 0, "wait before the first retry")
	rootCmd.PersistentFlags().IntSliceVar(&o.status, "retry-status", nil, "error statuses to retry")
	rootCmd.PersistentFlags().BoolVar(&o.on4xx, "retry-4xx", false, "retry every client error status")
	rootCmd.PersistentFlags().BoolVar(&o.on5xx, "retry-5xx", false, "retry every server error status")
	rootCmd.PersistentFlags().BoolVar(&o.onIO, "retry-io", false, "retry transport I/O failures")
	rootCmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&o.http2, "http2", false, "configure the transport for HTTP/2")
	rootCmd.PersistentFlags().BoolVar(&o.metrics, "metrics", false, "log request metrics on exit")

	rootCmd.AddCommand(newGetCommand(o))
	return rootCmd
}

// Execute runs the restify command and exits with status 1 if it fails.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		newLogger(os.Stderr, false).Error("restify failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    w != os.Stderr,
	}))
}
