// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package redo retries fallible operations with exponential backoff and
encodes the terminal result as an Outcome.

Create an Engine, or use the package-level Retry shorthand, to execute
an operation:

	eng := &redo.Engine[*User]{}
	out := eng.Do(ctx, func(ctx context.Context) (*User, error) {
		return fetchUser(ctx, id)
	})
	if !out.OK() {
		return out.Err()
	}
	user := out.Value()

The zero value Engine retries up to 3 times on the default transient
failure kinds, waiting 10 seconds before the first retry and doubling
the wait after each one. For control over the budget, the delays and
boundary between transient and permanent failures, set a custom policy
from package policy:

	eng := &redo.Engine[*User]{
		Policy: policy.New(5, 250*time.Millisecond, 2.0),
	}

Failures are classified by kind tags from package failure. Operations
that know a failure is worth retrying tag it at the raise site:

	return nil, failure.Wrap(failure.KindConnReset, err)

and callers extend or replace the transient set on the policy:

	pol := policy.Default
	pol.TransientKinds = failure.DefaultTransient.With("RateLimited")

Untagged errors are still classified: context cancellation, timeouts
and socket-level connectivity errors map onto the built-in kinds, and
anything else gets a kind derived from its concrete type, which is not
retried unless that exact tag is registered.

To hook into the fine-grained details of the retry loop, for example
to log attempts, install a handler into the appropriate handler chain:

	log := log.New(os.Stdout, "", log.LstdFlags)
	handlers := &redo.HandlerGroup{}
	handlers.PushBack(redo.AfterAttempt, redo.HandlerFunc(
		func(_ redo.Event, e *redo.Execution) {
			if e.Err != nil {
				log.Printf("attempt %d failed: %v", e.Attempt, e.Err)
			}
		}),
	)
	eng := &redo.Engine[*User]{Handlers: handlers}

Package metric provides a ready-made handler exposing attempt, retry
and outcome counters to Prometheus.
*/
package redo
