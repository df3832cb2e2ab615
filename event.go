// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redo

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in an Engine to observe or extend
// the retry loop with custom functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// retry execution starts.
	//
	// When the engine fires BeforeExecutionStart, the execution is
	// non-nil but no field has been set yet, not even the start time.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// individual attempt, i.e. before each invocation of the
	// operation.
	//
	// When the engine fires BeforeAttempt, the execution's attempt
	// counter identifies the attempt about to be made, and the Err and
	// Failure fields from any previous attempt have been cleared.
	BeforeAttempt
	// AfterAttempt identifies the event that occurs after an attempt
	// is concluded, regardless of whether it concluded successfully or
	// not.
	//
	// When the engine fires AfterAttempt, the execution's Err and
	// Failure fields describe the attempt's failure, or hold the zero
	// value if the attempt succeeded. AfterAttempt always runs before
	// the retry decision is made.
	AfterAttempt
	// AfterAttemptWait identifies the event that occurs after the
	// backoff wait which follows a failed attempt the engine decided
	// to retry.
	//
	// When the engine fires AfterAttemptWait, the execution's Wait
	// field contains the wait that just completed, and the attempt
	// counter still identifies the attempt that failed.
	// AfterAttemptWait never fires for an attempt that was not
	// retried.
	AfterAttemptWait
	// AfterExecutionEnd identifies the event that occurs after the
	// retry execution ends, whether in success, a non-transient
	// failure, or budget exhaustion.
	//
	// When the engine fires AfterExecutionEnd, the execution is in the
	// same state it was in after the final attempt EXCEPT that the end
	// time is set to the time the execution ended.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttempt",
	"AfterAttemptWait",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur during
// a retry execution, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttempt,
		AfterAttemptWait,
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
