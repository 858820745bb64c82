// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restify

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality, such as the collector in package metrics.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// plan execution starts.
	//
	// When Client fires BeforeExecutionStart, only the ID and Plan of
	// the execution are set.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// attempt.
	//
	// When Client fires BeforeAttempt, the execution's Request is the
	// request that will be sent once the handlers finish. Handlers may
	// change it, but should clone its URL and Header first since they
	// are shared with the plan.
	BeforeAttempt
	// BeforeReadBody identifies the event that occurs when an attempt
	// has received a response, before its body is read.
	//
	// BeforeReadBody fires for every response, whatever the status
	// code, and never for an attempt that ended in a transport error.
	BeforeReadBody
	// AfterAttemptTimeout identifies the event that occurs after an
	// attempt failed because of a timeout.
	//
	// When Client fires AfterAttemptTimeout, the execution's Err is the
	// timeout error and AttemptTimeouts has been incremented.
	AfterAttemptTimeout
	// AfterAttempt identifies the event that occurs after every
	// attempt, whatever its result.
	//
	// When Client fires AfterAttempt, Err is nil for a successful
	// attempt, a *failure.Error for an error status, and a *url.Error
	// otherwise. AfterAttempt fires before the retry conditions are
	// evaluated.
	AfterAttempt
	// BeforeBackoff identifies the event that occurs when a failed
	// attempt will be retried, before the backoff wait.
	//
	// When Client fires BeforeBackoff, the execution's Wait is the
	// duration of the coming wait and Err is the failure being retried.
	BeforeBackoff
	// AfterPlanTimeout identifies the event that occurs when the
	// deadline of the plan context is exceeded. It fires once, just
	// before AfterExecutionEnd.
	AfterPlanTimeout
	// AfterExecutionEnd identifies the event that occurs after the plan
	// execution ends.
	//
	// When Client fires AfterExecutionEnd, the execution is in its
	// final state: End is set and Err equals the error returned by the
	// client.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel
	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"BeforeBackoff",
	"AfterPlanTimeout",
	"AfterExecutionEnd",
}

// Events returns all events which can occur in a plan execution, in
// the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		BeforeReadBody,
		AfterAttemptTimeout,
		AfterAttempt,
		BeforeBackoff,
		AfterPlanTimeout,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
