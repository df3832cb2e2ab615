// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redo_test

import (
	"context"
	"fmt"
	"math/rand"
	"syscall"
	"time"

	"github.com/gogama/redo"
	"github.com/gogama/redo/failure"
	"github.com/gogama/redo/policy"
)

func Example() {
	attempts := 0
	pol := policy.New(3, time.Millisecond, 2.0)
	out := redo.Retry(context.Background(), func(_ context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", failure.Wrap(failure.KindConnReset, syscall.ECONNRESET)
		}
		return "pong", nil
	}, pol)

	fmt.Println(out.OK(), out.Value(), attempts)
	// Output: true pong 3
}

// Example_flaky exercises the engine against an operation that fails
// nondeterministically with a mix of transient and permanent failure
// kinds, the way a network dependency might.
func Example_flaky() {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	flaky := func(_ context.Context) (int, error) {
		switch r.Intn(4) {
		case 0:
			return 0, failure.Wrap(failure.KindConnReset, syscall.ECONNRESET)
		case 1:
			return 0, failure.New(failure.KindInterruptedIO, "read interrupted")
		case 2:
			return 0, failure.New(failure.Kind("QuotaExceeded"), "quota exceeded")
		default:
			return r.Intn(100), nil
		}
	}

	eng := &redo.Engine[int]{Policy: policy.New(5, time.Millisecond, 2.0)}
	out := eng.Do(context.Background(), flaky)
	if out.OK() {
		fmt.Println("value:", out.Value())
	} else {
		fmt.Println("failed:", out.Failure().Kind)
	}
}
