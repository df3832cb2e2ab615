// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redo

import (
	"fmt"

	"github.com/gogama/redo/failure"
)

// An Outcome is the terminal result of one retry execution: either the
// value the operation finally produced, or the failure recorded on the
// last attempt.
//
// Exactly one of the two is populated. An Outcome is immutable once
// returned; the engine produces exactly one per Do call and never lets
// a raw failure escape its boundary instead.
type Outcome[T any] struct {
	value   T
	failure failure.Info
	ok      bool
}

// Success constructs a successful Outcome carrying value.
func Success[T any](value T) Outcome[T] {
	return Outcome[T]{value: value, ok: true}
}

// Failure constructs a failed Outcome carrying the failure record.
func Failure[T any](info failure.Info) Outcome[T] {
	return Outcome[T]{failure: info}
}

// OK indicates whether the outcome is a success.
func (o Outcome[T]) OK() bool {
	return o.ok
}

// Value returns the operation's result. It is the zero value of T
// unless OK reports true.
func (o Outcome[T]) Value() T {
	return o.value
}

// Failure returns the failure recorded on the last attempt. It is the
// zero Info if OK reports true.
//
// Only the final attempt's failure is reported; failures from earlier
// attempts that were retried are discarded.
func (o Outcome[T]) Failure() failure.Info {
	return o.failure
}

// Err returns nil for a successful outcome, and the last attempt's
// failure as an error otherwise. It is convenient for callers that
// want the ordinary Go (value, error) shape:
//
//	out := redo.Retry(ctx, op, pol)
//	if err := out.Err(); err != nil {
//		return err
//	}
//	use(out.Value())
func (o Outcome[T]) Err() error {
	if o.ok {
		return nil
	}

	return o.failure
}

// String describes the outcome for diagnostic purposes.
func (o Outcome[T]) String() string {
	if o.ok {
		return fmt.Sprintf("success(%v)", o.value)
	}

	return fmt.Sprintf("failure(%s: %s)", o.failure.Kind, o.failure.Message)
}
