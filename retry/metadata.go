// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ljtfreitas/java-restify-sub003/status"
)

// Metadata is the per-call description of retry behavior, as declared
// next to a call site or in a configuration file. Zero fields are
// unset.
type Metadata struct {
	// Attempts is the maximum number of tries.
	Attempts int `yaml:"attempts"`
	// Timeout bounds the time spent starting new attempts.
	Timeout time.Duration `yaml:"timeout"`
	// Status lists error statuses which are retried.
	Status []int `yaml:"status"`
	// Causes lists errors which are retried when found anywhere in the
	// cause chain of a failure, compared as by CauseIs.
	Causes []error `yaml:"-"`
	// On4xx retries every client error status.
	On4xx bool `yaml:"on_4xx"`
	// On5xx retries every server error status.
	On5xx bool `yaml:"on_5xx"`
	// OnIOFailure retries transport-level I/O failures.
	OnIOFailure bool `yaml:"on_io_failure"`
	// Backoff describes the wait between attempts.
	Backoff *BackoffMetadata `yaml:"backoff"`
}

// BackoffMetadata is the backoff part of Metadata. A nil Delay is
// unset, while a Delay pointing at zero asks for no wait at all. A zero
// Multiplier is unset.
type BackoffMetadata struct {
	Delay      *time.Duration `yaml:"delay"`
	Multiplier float64        `yaml:"multiplier"`
}

// Delay returns a pointer to d, for use in BackoffMetadata.
func Delay(d time.Duration) *time.Duration {
	return &d
}

// Configuration translates m into a Configuration. Only the fields set
// in m are set in the result, so that it can be merged over a fallback
// with Merge. A nil m yields nil.
//
// Configuration panics if a field holds a value the Builder rejects.
func (m *Metadata) Configuration() *Configuration {
	if m == nil {
		return nil
	}

	b := NewBuilder()
	if m.Attempts != 0 {
		b.Attempts(m.Attempts)
	}
	if m.Timeout != 0 {
		b.Timeout(m.Timeout)
	}
	if len(m.Status) > 0 {
		codes := make([]status.Code, len(m.Status))
		for i, s := range m.Status {
			codes[i] = status.Of(s)
		}
		b.When(StatusIn(codes...))
	}
	if len(m.Causes) > 0 {
		b.When(CauseIs(m.Causes...))
	}
	if m.On4xx {
		b.When(Any4xx)
	}
	if m.On5xx {
		b.When(Any5xx)
	}
	if m.OnIOFailure {
		b.When(IOFailure)
	}
	if m.Backoff != nil {
		if m.Backoff.Delay != nil {
			b.Delay(*m.Backoff.Delay)
		}
		if m.Backoff.Multiplier != 0 {
			b.Multiplier(m.Backoff.Multiplier)
		}
	}
	return b.Build()
}

// Validate reports the first field of m holding a value which
// Configuration would reject.
func (m *Metadata) Validate() error {
	switch {
	case m == nil:
		return nil
	case m.Attempts < 0:
		return fmt.Errorf("restify/retry: invalid attempts %d", m.Attempts)
	case m.Timeout < 0:
		return fmt.Errorf("restify/retry: invalid timeout %s", m.Timeout)
	case m.Backoff != nil && m.Backoff.Delay != nil && *m.Backoff.Delay < 0:
		return fmt.Errorf("restify/retry: invalid backoff delay %s", *m.Backoff.Delay)
	case m.Backoff != nil && m.Backoff.Multiplier != 0 && (!(m.Backoff.Multiplier >= 1) || math.IsInf(m.Backoff.Multiplier, 1)):
		return fmt.Errorf("restify/retry: invalid backoff multiplier %g", m.Backoff.Multiplier)
	}
	for _, s := range m.Status {
		if !status.Of(s).IsError() {
			return fmt.Errorf("restify/retry: status %d is not an error", s)
		}
	}
	for _, err := range m.Causes {
		if err == nil {
			return errors.New("restify/retry: nil cause")
		}
	}
	return nil
}
