// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads retry settings for named calls from a YAML file.
//
// A file holds default settings and per-call settings, each in the
// shape of retry.Metadata:
//
//	default:
//	  attempts: 2
//	  on_io_failure: true
//	calls:
//	  get-widget:
//	    attempts: 5
//	    timeout: 10s
//	    status: [429, 503]
//	    backoff:
//	      delay: 100ms
//	      multiplier: 2
//
// References to environment variables such as ${ATTEMPTS} are expanded
// before the file is parsed.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/ljtfreitas/java-restify-sub003/retry"
	"gopkg.in/yaml.v2"
)

// ErrUnknownCall is returned by File.Configuration for a call name the
// file does not declare.
var ErrUnknownCall = errors.New("restify/config: unknown call")

// File is the content of a configuration file.
type File struct {
	// Default holds the settings which apply to every call.
	Default retry.Metadata `yaml:"default"`
	// Calls holds per-call settings by call name. They take precedence
	// over Default.
	Calls map[string]retry.Metadata `yaml:"calls"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return f, nil
}

// Parse expands environment variables in data, then parses and
// validates it.
func Parse(data []byte) (*File, error) {
	var f File
	expanded := os.ExpandEnv(string(data))
	if err := yaml.UnmarshalStrict([]byte(expanded), &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate reports the first invalid setting in f.
func (f *File) Validate() error {
	if err := f.Default.Validate(); err != nil {
		return fmt.Errorf("default: %w", err)
	}
	for _, name := range f.Names() {
		m := f.Calls[name]
		if err := m.Validate(); err != nil {
			return fmt.Errorf("call %q: %w", name, err)
		}
	}
	return nil
}

// Names returns the declared call names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Calls))
	for name := range f.Calls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Configuration returns the retry configuration for the named call:
// its own settings merged over the default settings, as by
// retry.Merge. An empty name yields the default settings alone.
//
// The file must be valid; Load and Parse ensure that.
func (f *File) Configuration(name string) (*retry.Configuration, error) {
	fallback := f.Default.Configuration()
	if name == "" {
		return fallback, nil
	}
	m, ok := f.Calls[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCall, name)
	}
	return retry.Merge(m.Configuration(), fallback), nil
}
