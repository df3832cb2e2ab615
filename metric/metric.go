// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogama/redo"
)

const statusSuccess = "success"
const statusFailure = "failure"

// A Handler is a redo event handler that counts attempts, retries and
// terminal outcomes and observes backoff wait durations.
//
// Handler is safe for concurrent use by multiple goroutines and may be
// shared between engines; the metrics then aggregate across all of
// them.
type Handler struct {
	// Attempts counts operation invocations, labelled by status
	// (success or failure).
	Attempts *prometheus.CounterVec

	// Retries counts backoff waits, i.e. failed attempts the engine
	// decided to retry.
	Retries prometheus.Counter

	// Outcomes counts terminal outcomes, labelled by status and by
	// the failure kind (empty for a success).
	Outcomes *prometheus.CounterVec

	// WaitDuration observes the backoff wait durations in seconds.
	WaitDuration prometheus.Histogram
}

// NewHandler creates a Handler with unregistered metrics. Call
// Register to add them to a Prometheus registry.
func NewHandler() *Handler {
	return &Handler{
		Attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "redo",
				Subsystem: "retry",
				Name:      "attempts_total",
				Help:      "Total number of operation attempts",
			},
			[]string{"status"},
		),
		Retries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "redo",
				Subsystem: "retry",
				Name:      "retries_total",
				Help:      "Total number of retries (failed attempts followed by a backoff wait)",
			},
		),
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "redo",
				Subsystem: "retry",
				Name:      "outcomes_total",
				Help:      "Total number of terminal retry outcomes",
			},
			[]string{"status", "kind"},
		),
		WaitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "redo",
				Subsystem: "retry",
				Name:      "wait_duration_seconds",
				Help:      "Backoff wait duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// Register registers the handler's metrics with the given registerer.
func (h *Handler) Register(r prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		h.Attempts,
		h.Retries,
		h.Outcomes,
		h.WaitDuration,
	}
	for _, c := range collectors {
		if err := r.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// Install pushes the handler onto every event chain of the group it
// needs to observe the full retry lifecycle.
func (h *Handler) Install(g *redo.HandlerGroup) {
	g.PushBack(redo.AfterAttempt, h)
	g.PushBack(redo.AfterAttemptWait, h)
	g.PushBack(redo.AfterExecutionEnd, h)
}

// Handle implements the redo.Handler interface.
func (h *Handler) Handle(evt redo.Event, e *redo.Execution) {
	switch evt {
	case redo.AfterAttempt:
		h.Attempts.WithLabelValues(attemptStatus(e)).Inc()
	case redo.AfterAttemptWait:
		h.Retries.Inc()
		h.WaitDuration.Observe(e.Wait.Seconds())
	case redo.AfterExecutionEnd:
		h.Outcomes.WithLabelValues(attemptStatus(e), string(e.Failure.Kind)).Inc()
	}
}

func attemptStatus(e *redo.Execution) string {
	if e.Err != nil {
		return statusFailure
	}

	return statusSuccess
}

var _ redo.Handler = (*Handler)(nil)
