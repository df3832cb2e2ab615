// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package policy defines the retry policy value consumed by the redo
// engine: how many retries remain, how long to wait before the next
// one, how the wait grows, and which failure kinds are worth retrying.
//
// A Policy is an immutable value. The engine never mutates the policy
// it is given; each retry step derives a fresh value with Next, with
// the budget decremented and the delay scaled:
//
//	pol := policy.New(3, 100*time.Millisecond, 2.0)
//	pol = pol.Next() // MaxRetries 2, BaseDelay 200ms
//	pol = pol.Next() // MaxRetries 1, BaseDelay 400ms
//
// The zero multiplier cases behave as the arithmetic suggests: a
// multiplier of 1.0 yields a constant delay, and a multiplier below
// 1.0 yields a decaying one. The policy imposes no floor or ceiling on
// the delay; pick sane values.
package policy
