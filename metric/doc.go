// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metric provides a ready-made redo event handler exposing
// attempt, retry, wait and outcome metrics to Prometheus.
//
// Install the handler on every event so it sees the full retry
// lifecycle:
//
//	h := metric.NewHandler()
//	if err := h.Register(prometheus.DefaultRegisterer); err != nil {
//		...
//	}
//	handlers := &redo.HandlerGroup{}
//	h.Install(handlers)
//	eng := &redo.Engine[Result]{Handlers: handlers}
//
// Nothing in the core engine imports this package; it is an optional
// observation aid built entirely on the handler seam.
package metric
