// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package policy

import (
	"math"
	"time"

	"github.com/gogama/redo/failure"
)

// DefaultMaxRetries is the retry budget of the Default policy.
const DefaultMaxRetries = 3

// DefaultBaseDelay is the initial retry wait of the Default policy.
const DefaultBaseDelay = 10 * time.Second

// DefaultBackoffMultiplier is the backoff multiplier of the Default
// policy.
const DefaultBackoffMultiplier = 2.0

// A Policy controls how the retry engine reacts to a failed attempt:
// whether budget remains for a retry, how long to wait before it, how
// that wait grows on subsequent retries, and which failure kinds are
// eligible for retry at all.
//
// Policy is a plain immutable value. Treat a constructed Policy as
// read-only and derive per-retry values with Next; sharing one Policy
// between concurrent retry invocations is safe because nothing ever
// writes to it.
type Policy struct {
	// MaxRetries is the remaining retry budget. A failed attempt is
	// retried only while MaxRetries is greater than zero; Next
	// decrements it by one.
	MaxRetries int

	// BaseDelay is the wait inserted before the next retry. Next
	// scales it by BackoffMultiplier.
	BaseDelay time.Duration

	// BackoffMultiplier is the factor applied to BaseDelay after each
	// retry. 1.0 yields a constant delay; values below 1.0 decay.
	BackoffMultiplier float64

	// TransientKinds is the set of failure kinds eligible for retry.
	//
	// If TransientKinds is nil, failure.DefaultTransient is used. A
	// non-nil set wholly replaces the defaults; to extend them
	// instead, build the set with failure.DefaultTransient.With.
	TransientKinds failure.Set
}

// Default is a general-purpose retry policy suitable for common use
// cases: up to 3 retries, starting at a 10 second delay and doubling
// after each retry, retrying the failure.DefaultTransient kinds.
var Default = Policy{
	MaxRetries:        DefaultMaxRetries,
	BaseDelay:         DefaultBaseDelay,
	BackoffMultiplier: DefaultBackoffMultiplier,
}

// Never is a policy that never retries. It is useful if you want the
// outcome encoding of the retry engine but no retries.
var Never = Policy{
	MaxRetries:        0,
	BaseDelay:         DefaultBaseDelay,
	BackoffMultiplier: DefaultBackoffMultiplier,
}

// New constructs a Policy with the default transient kinds.
//
// The retry budget must be non-negative, and the base delay and
// multiplier must be positive.
func New(maxRetries int, baseDelay time.Duration, multiplier float64) Policy {
	if maxRetries < 0 {
		panic("policy: maxRetries must be non-negative")
	}
	if baseDelay < 1 {
		panic("policy: baseDelay must be positive")
	}
	if multiplier <= 0.0 {
		panic("policy: multiplier must be positive")
	}

	return Policy{
		MaxRetries:        maxRetries,
		BaseDelay:         baseDelay,
		BackoffMultiplier: multiplier,
	}
}

// Next derives the policy for the step after one retry: the budget is
// decremented by one and the base delay is scaled by the backoff
// multiplier. All other fields are copied. The receiver is left
// unmodified.
func (p Policy) Next() Policy {
	p.MaxRetries--
	p.BaseDelay = time.Duration(float64(p.BaseDelay) * p.BackoffMultiplier)
	return p
}

// Kinds returns the transient kind set the policy retries on:
// TransientKinds if set, failure.DefaultTransient otherwise.
func (p Policy) Kinds() failure.Set {
	if p.TransientKinds == nil {
		return failure.DefaultTransient
	}

	return p.TransientKinds
}

// DelayBeforeRetry returns the wait the policy schedules before retry
// k, counting from one: BaseDelay for the first retry, and
// BaseDelay * BackoffMultiplier^(k-1) in general. It panics if k is
// less than one.
func (p Policy) DelayBeforeRetry(k int) time.Duration {
	if k < 1 {
		panic("policy: retry number must be at least 1")
	}

	return time.Duration(float64(p.BaseDelay) * math.Pow(p.BackoffMultiplier, float64(k-1)))
}

// IsZero indicates whether the policy is the zero value. The retry
// engine substitutes Default for a zero policy.
func (p Policy) IsZero() bool {
	return p.MaxRetries == 0 && p.BaseDelay == 0 && p.BackoffMultiplier == 0 && p.TransientKinds == nil
}
