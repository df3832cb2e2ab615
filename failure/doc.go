// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package failure tags failure values with kinds and classifies them as
// transient or non-transient. This is the decision input for retry
// policies, and is also handy for other purposes such as bucketing
// error metrics.
//
// Package failure is extremely lightweight, as it depends only on the
// standard library packages "context", "errors", "fmt" and "syscall",
// so it doesn't bring any significant dependencies when imported as a
// standalone package.
//
// Kinds are compared by exact tag equality. There is no hierarchy and
// no wildcard matching: a kind matches a set only if that precise tag
// is a member. Code that raises a failure it knows to be transient
// should tag it at the raise site with Wrap or New; Categorize then
// recovers the tag anywhere in the wrapped cause chain.
package failure
