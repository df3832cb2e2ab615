// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redo

import (
	"context"
	"time"

	"github.com/gogama/redo/failure"
)

// An Execution represents the state of a single retry execution.
//
// When a retry execution is requested, an Execution is created for it
// and updated as the execution progresses, for example when an attempt
// fails or a backoff wait completes. Event handlers receive the same
// Execution on every event of one execution.
//
// Event handlers may set values on an Execution using its SetValue
// method and read them back using the Value method. However, they
// should treat the structure's exported field values as immutable and
// leave them unmodified, as the execution state is vital to the
// correct functioning of the retry loop.
type Execution struct {
	// Attempt is the zero-based number of the current attempt. It is
	// set to zero on the initial attempt, one on the first retry, and
	// so on.
	//
	// When the execution has ended, Attempt contains the zero-based
	// number of the last attempt made. An execution that ends after an
	// initial attempt plus two retries has an attempt number of 2.
	Attempt int

	// Start is the start time of the retry execution. It is assigned a
	// non-zero value when the execution starts, and this value remains
	// constant thereafter.
	Start time.Time

	// End is the end time of the retry execution. It contains the zero
	// value until the execution ends, when it is set to the current
	// time.
	End time.Time

	// Err is the error received from the most recent attempt. It is
	// nil if the most recent attempt succeeded, or while a current
	// attempt is underway, or before the execution starts.
	Err error

	// Failure is the classified record of the most recent attempt's
	// failure, derived from Err. It is the zero Info whenever Err is
	// nil.
	Failure failure.Info

	// Wait is the backoff wait the engine scheduled after the most
	// recent failed attempt, or zero if no wait has been scheduled
	// yet. It is set before the wait begins and remains readable
	// during the AfterAttemptWait event.
	Wait time.Duration

	// data contains arbitrary user data. The redo library will not
	// touch this field, and it will typically be nil unless used by
	// event handler writers.
	//
	// Event handlers may interact with this via the Value and SetValue
	// methods.
	data context.Context
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start. The
// return value is thus monotonically increasing over the life of the
// execution, and becomes static when the execution has ended.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
//
// If the return value is false, the execution has not started yet. If
// the return value is true, then the execution has started, and Start
// is a non-zero time, indicating the execution start time.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
//
// If the return value is false, the execution is still in-flight. If
// the return value is true, then the execution is over, End is a
// non-zero time, and there will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// SetValue allows event handlers to store arbitrary data in the retry
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • may not be nil;
//
// • must be comparable;
//
// • should not be of type string or any other built-in type to avoid
// collisions between different event handlers putting data into the
// same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
