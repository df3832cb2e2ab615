// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redo

import (
	"context"
	"time"

	"github.com/gogama/redo/failure"
	"github.com/gogama/redo/policy"
)

// An Operation is the caller-supplied, possibly-failing computation the
// engine retries. The engine invokes it once per attempt and never
// retains it beyond the duration of the Do call.
//
// The context is the engine's pass-through of the caller's context, so
// an operation can observe cooperative cancellation; an operation that
// ignores it is simply an ordinary fallible function. An operation
// that returns the context's error when cancelled mid-flight gets
// classified as failure.KindInterrupted, which is retried by default.
type Operation[T any] func(ctx context.Context) (T, error)

var emptyHandlers = HandlerGroup{}

// An Engine executes operations with bounded, sequential retries. Its
// zero value is a valid configuration.
//
// The zero value engine uses policy.Default as the retry policy and an
// empty handler group (no event handlers/plug-ins).
//
// An Engine holds no mutable state, so it is safe for concurrent use
// by multiple goroutines; concurrent Do calls do not affect one
// another. Attempts within a single Do call are strictly sequential:
// an attempt never starts before the previous attempt's backoff wait
// has completed.
type Engine[T any] struct {
	// Policy controls how many retries are allowed, how long to wait
	// between them, and which failure kinds are retried.
	//
	// If Policy is the zero value, policy.Default is used.
	Policy policy.Policy

	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a retry execution.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// Do invokes the operation and retries it, following the retry policy
// set on the Engine, until the operation succeeds, the failure is not
// transient, or the retry budget is exhausted.
//
// The returned Outcome is a success carrying the operation's value if
// any attempt succeeded, and otherwise a failure carrying the LAST
// attempt's classified failure; failures from earlier attempts are
// discarded. Do never propagates an operation failure past its own
// boundary: the caller always receives an Outcome and must inspect it.
//
// A failed attempt is retried only if the policy's remaining budget is
// greater than zero AND the failure's kind is in the policy's
// transient set. A non-transient failure is never retried even with
// budget remaining, and a transient failure is never retried once the
// budget is exhausted. Before each retry the engine blocks for the
// policy's current base delay, then continues with the derived policy:
// budget decremented, delay scaled by the backoff multiplier.
//
// The backoff wait always runs to completion. Cancelling ctx does not
// cut a wait or an in-flight attempt short from the engine's side; a
// cancellation is observed only when the operation itself returns the
// context's error, at which point it is classified like any other
// failure (failure.KindInterrupted, transient by default). Once Do is
// called there is no way to stop it short of letting the budget
// exhaust.
func (eng *Engine[T]) Do(ctx context.Context, op Operation[T]) Outcome[T] {
	pol := eng.Policy
	if pol.IsZero() {
		pol = policy.Default
	}

	handlers := eng.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	e := Execution{}
	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()

	var out Outcome[T]
	for {
		handlers.run(BeforeAttempt, &e)
		value, err := op(ctx)
		if err == nil {
			handlers.run(AfterAttempt, &e)
			out = Success(value)
			break
		}

		info := failure.Categorize(err)
		e.Err = err
		e.Failure = info
		handlers.run(AfterAttempt, &e)

		if pol.MaxRetries > 0 && failure.IsTransient(info, pol.Kinds()) {
			e.Wait = pol.BaseDelay
			timer := time.NewTimer(pol.BaseDelay)
			<-timer.C
			handlers.run(AfterAttemptWait, &e)
			pol = pol.Next()
			e.Attempt++
			e.Err = nil
			e.Failure = failure.Info{}
			continue
		}

		out = Failure[T](info)
		break
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return out
}

// Retry executes op under pol on a throwaway Engine with no handlers.
// It is shorthand for the common case where no event handlers are
// needed:
//
//	out := redo.Retry(ctx, fetchUser, policy.Default)
func Retry[T any](ctx context.Context, op Operation[T], pol policy.Policy) Outcome[T] {
	eng := Engine[T]{Policy: pol}
	return eng.Do(ctx, op)
}
