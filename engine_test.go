// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redo

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/redo/failure"
	"github.com/gogama/redo/policy"
)

func TestDo_FirstAttemptSuccess(t *testing.T) {
	attempts := 0
	eng := &Engine[string]{Policy: policy.Default}
	start := time.Now()
	out := eng.Do(context.Background(), func(_ context.Context) (string, error) {
		attempts++
		return "done", nil
	})
	elapsed := time.Since(start)

	assert.True(t, out.OK())
	assert.Equal(t, "done", out.Value())
	assert.Equal(t, 1, attempts)
	// Default policy's first wait is 10 seconds; a successful first
	// attempt must not incur it.
	assert.Less(t, elapsed, time.Second)
}

func TestDo_TransientFailureExhaustsBudget(t *testing.T) {
	attempts := 0
	eng := &Engine[int]{Policy: policy.New(3, time.Millisecond, 2.0)}
	out := eng.Do(context.Background(), func(_ context.Context) (int, error) {
		attempts++
		return 0, failure.Wrap(failure.KindConnReset, fmt.Errorf("attempt %d", attempts))
	})

	assert.False(t, out.OK())
	assert.Equal(t, 4, attempts, "expect maxRetries+1 attempts")
	assert.Equal(t, failure.KindConnReset, out.Failure().Kind)
	// Only the last attempt's failure is reported.
	assert.Equal(t, "attempt 4", out.Failure().Message)
}

func TestDo_NonTransientFailureNeverRetried(t *testing.T) {
	attempts := 0
	eng := &Engine[int]{Policy: policy.New(5, 10*time.Second, 2.0)}
	start := time.Now()
	out := eng.Do(context.Background(), func(_ context.Context) (int, error) {
		attempts++
		return 0, errors.New("bad input")
	})
	elapsed := time.Since(start)

	assert.False(t, out.OK())
	assert.Equal(t, 1, attempts, "expect a single attempt despite remaining budget")
	assert.Equal(t, failure.Kind("*errors.errorString"), out.Failure().Kind)
	assert.Less(t, elapsed, time.Second, "expect no wait")
}

func TestDo_ZeroBudget(t *testing.T) {
	attempts := 0
	eng := &Engine[int]{Policy: policy.Never}
	out := eng.Do(context.Background(), func(_ context.Context) (int, error) {
		attempts++
		return 0, syscall.ECONNRESET
	})

	assert.False(t, out.OK())
	assert.Equal(t, 1, attempts, "expect no retry of a transient failure once budget is exhausted")
	assert.Equal(t, failure.KindConnReset, out.Failure().Kind)
}

func TestDo_BackoffSchedule(t *testing.T) {
	pol := policy.New(3, time.Millisecond, 2.0)
	waits := recordWaits(t)
	eng := &Engine[int]{Policy: pol, Handlers: waits.handlers}
	out := eng.Do(context.Background(), func(_ context.Context) (int, error) {
		return 0, syscall.ECONNRESET
	})

	assert.False(t, out.OK())
	require.Len(t, waits.waits, 3)
	for k := 1; k <= 3; k++ {
		assert.Equal(t, pol.DelayBeforeRetry(k), waits.waits[k-1], "wait before retry %d", k)
	}
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}, waits.waits)
}

func TestDo_TwoFailuresThenSuccess(t *testing.T) {
	attempts := 0
	waits := recordWaits(t)
	eng := &Engine[string]{
		Policy:   policy.New(3, time.Millisecond, 2.0),
		Handlers: waits.handlers,
	}
	out := eng.Do(context.Background(), func(_ context.Context) (string, error) {
		attempts++
		if attempts <= 2 {
			return "", syscall.ECONNRESET
		}
		return "recovered", nil
	})

	assert.True(t, out.OK())
	assert.Equal(t, "recovered", out.Value())
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, waits.waits)
}

func TestDo_UnregisteredKind(t *testing.T) {
	attempts := 0
	out := Retry(context.Background(), func(_ context.Context) (int, error) {
		attempts++
		return 0, failure.New(failure.Kind("QuotaExceeded"), "quota exceeded")
	}, policy.Default)

	assert.False(t, out.OK())
	assert.Equal(t, 1, attempts)
	assert.Equal(t, failure.Kind("QuotaExceeded"), out.Failure().Kind)
}

func TestDo_CancellationNormalized(t *testing.T) {
	t.Run("classified as interrupted", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		out := Retry(ctx, func(ctx context.Context) (int, error) {
			return 0, ctx.Err()
		}, policy.Never)

		assert.False(t, out.OK())
		assert.Equal(t, failure.KindInterrupted, out.Failure().Kind)
	})
	t.Run("transient by default", func(t *testing.T) {
		attempts := 0
		out := Retry(context.Background(), func(_ context.Context) (int, error) {
			attempts++
			if attempts == 1 {
				return 0, fmt.Errorf("attempt stopped: %w", context.Canceled)
			}
			return 7, nil
		}, policy.New(2, time.Millisecond, 2.0))

		assert.True(t, out.OK())
		assert.Equal(t, 7, out.Value())
		assert.Equal(t, 2, attempts)
	})
}

func TestDo_TransientKindsReplaceDefaults(t *testing.T) {
	pol := policy.New(3, time.Millisecond, 2.0)
	pol.TransientKinds = failure.NewSet(failure.Kind("RateLimited"))
	t.Run("registered kind retried", func(t *testing.T) {
		attempts := 0
		out := Retry(context.Background(), func(_ context.Context) (int, error) {
			attempts++
			if attempts == 1 {
				return 0, failure.New(failure.Kind("RateLimited"), "slow down")
			}
			return 1, nil
		}, pol)
		assert.True(t, out.OK())
		assert.Equal(t, 2, attempts)
	})
	t.Run("default kind no longer retried", func(t *testing.T) {
		attempts := 0
		out := Retry(context.Background(), func(_ context.Context) (int, error) {
			attempts++
			return 0, syscall.ECONNRESET
		}, pol)
		assert.False(t, out.OK())
		assert.Equal(t, 1, attempts)
	})
}

func TestDo_ZeroValueEngine(t *testing.T) {
	attempts := 0
	eng := &Engine[int]{}
	out := eng.Do(context.Background(), func(_ context.Context) (int, error) {
		attempts++
		return 0, errors.New("permanent")
	})

	assert.False(t, out.OK())
	assert.Equal(t, 1, attempts)
}

func TestDo_WaitLowerBound(t *testing.T) {
	eng := &Engine[int]{Policy: policy.New(2, 20*time.Millisecond, 1.0)}
	start := time.Now()
	out := eng.Do(context.Background(), func(_ context.Context) (int, error) {
		return 0, syscall.ECONNRESET
	})
	elapsed := time.Since(start)

	assert.False(t, out.OK())
	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond, "expect two full 20ms waits")
}

func TestDo_EventOrder(t *testing.T) {
	var evts []string
	handlers := &HandlerGroup{}
	for _, evt := range Events() {
		evt := evt
		handlers.PushBack(evt, HandlerFunc(func(evt Event, e *Execution) {
			evts = append(evts, fmt.Sprintf("%s.%d", evt, e.Attempt))
		}))
	}
	attempts := 0
	eng := &Engine[int]{
		Policy:   policy.New(3, time.Millisecond, 2.0),
		Handlers: handlers,
	}
	out := eng.Do(context.Background(), func(_ context.Context) (int, error) {
		attempts++
		if attempts == 1 {
			return 0, syscall.ECONNRESET
		}
		return 1, nil
	})

	assert.True(t, out.OK())
	assert.Equal(t, []string{
		"BeforeExecutionStart.0",
		"BeforeAttempt.0",
		"AfterAttempt.0",
		"AfterAttemptWait.0",
		"BeforeAttempt.1",
		"AfterAttempt.1",
		"AfterExecutionEnd.1",
	}, evts)
}

func TestDo_ExecutionState(t *testing.T) {
	var final *Execution
	handlers := &HandlerGroup{}
	handlers.PushBack(AfterExecutionEnd, HandlerFunc(func(_ Event, e *Execution) {
		final = e
	}))
	handlers.PushBack(AfterAttempt, HandlerFunc(func(_ Event, e *Execution) {
		if e.Err != nil {
			assert.Equal(t, failure.KindConnReset, e.Failure.Kind)
		} else {
			assert.Equal(t, failure.Info{}, e.Failure)
		}
	}))
	attempts := 0
	eng := &Engine[int]{
		Policy:   policy.New(3, time.Millisecond, 2.0),
		Handlers: handlers,
	}
	eng.Do(context.Background(), func(_ context.Context) (int, error) {
		attempts++
		if attempts == 1 {
			return 0, syscall.ECONNRESET
		}
		return 1, nil
	})

	require.NotNil(t, final)
	assert.Equal(t, 1, final.Attempt)
	assert.True(t, final.Started())
	assert.True(t, final.Ended())
	assert.NoError(t, final.Err)
}

func TestRetry(t *testing.T) {
	out := Retry(context.Background(), func(_ context.Context) (string, error) {
		return "hello", nil
	}, policy.Default)

	assert.True(t, out.OK())
	assert.Equal(t, "hello", out.Value())
}

type waitRecorder struct {
	waits    []time.Duration
	handlers *HandlerGroup
}

func recordWaits(t *testing.T) *waitRecorder {
	t.Helper()
	r := &waitRecorder{handlers: &HandlerGroup{}}
	r.handlers.PushBack(AfterAttemptWait, HandlerFunc(func(_ Event, e *Execution) {
		r.waits = append(r.waits, e.Wait)
	}))
	return r
}
