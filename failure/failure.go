// Copyright 2026 The redo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"context"
	"errors"
	"fmt"
	"syscall"
)

// A Kind is the tag naming a kind of failure, for example a dropped
// connection or an interrupted wait.
//
// Kinds are opaque strings compared by exact equality. Callers may mint
// arbitrary kinds for their own failure taxonomy; the three built-in
// kinds below are the ones Categorize assigns to common untagged
// errors, and the members of DefaultTransient.
type Kind string

const (
	// KindConnReset tags a socket-level connectivity failure, for
	// example a connection reset or refused by the remote host.
	//
	// Connectivity failures are classified transient by default: they
	// commonly occur while the service on the remote host is starting
	// or restarting, so a retry has a fair prospect of success.
	KindConnReset Kind = "ConnReset"
	// KindInterruptedIO tags an I/O operation that was cut short
	// before completing, for example a read that timed out.
	KindInterruptedIO Kind = "InterruptedIO"
	// KindInterrupted tags a cooperative cancellation observed while
	// an attempt was in flight: the operation was asked to stop and
	// returned early.
	//
	// Cancellation is deliberately normalized into an ordinary failure
	// kind so that it flows through the same classification path as
	// every other failure, rather than carving out a separate control
	// flow for it.
	KindInterrupted Kind = "Interrupted"
)

// An Info is the captured record of one failure: the Kind used for
// classification, a human-readable message, and the underlying cause
// when there is one.
//
// Info implements the error interface, so a failure tagged with Wrap or
// New travels through ordinary error returns, and Categorize recovers
// it with errors.As no matter how many times it has been wrapped since.
type Info struct {
	// Kind is the classification tag. It is the only field consulted
	// by IsTransient.
	Kind Kind

	// Message is the human-readable description of the failure.
	Message string

	// Cause is the underlying error, if the failure wraps one. It may
	// be nil, for example for failures constructed with New.
	Cause error
}

// Error returns the failure message.
func (i Info) Error() string {
	return i.Message
}

// Unwrap returns the underlying cause, which may be nil.
func (i Info) Unwrap() error {
	return i.Cause
}

// New constructs a tagged failure from a kind and a message.
func New(kind Kind, message string) Info {
	return Info{Kind: kind, Message: message}
}

// Wrap tags an existing error with a failure kind, so that Categorize
// classifies it by that kind no matter how it is further wrapped before
// reaching the retry engine.
//
// If err is nil, Wrap returns nil, so it can be applied unconditionally
// to a function's error result.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	return Info{Kind: kind, Message: err.Error(), Cause: err}
}

// Categorize derives the failure Info for an arbitrary error.
//
// The rules are applied in order:
//
// • An Info anywhere in err's wrapped cause chain wins: the failure was
// tagged at the raise site and that tag is authoritative.
//
// • context.Canceled and context.DeadlineExceeded produce
// KindInterrupted: a cooperative cancellation observed during an
// attempt is normalized into the classification path rather than
// treated as a distinct signal.
//
// • An error whose chain reports Timeout() == true produces
// KindInterruptedIO. Categorize never consults Temporary(), as the
// semantics of Temporary() aren't entirely clear.
//
// • syscall.ECONNRESET and syscall.ECONNREFUSED produce KindConnReset.
//
// • Anything else gets a kind derived from the error's concrete type
// name. Such a kind matches a transient set only if the caller
// registered that exact tag.
//
// Categorize panics if err is nil; a nil error is not a failure.
func Categorize(err error) Info {
	if err == nil {
		panic("failure: Categorize called with nil error")
	}

	var info Info
	if errors.As(err, &info) {
		return info
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Info{Kind: KindInterrupted, Message: err.Error(), Cause: err}
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Info{Kind: KindInterruptedIO, Message: err.Error(), Cause: err}
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET || errno == syscall.ECONNREFUSED {
			return Info{Kind: KindConnReset, Message: err.Error(), Cause: err}
		}
	}

	return Info{Kind: Kind(fmt.Sprintf("%T", err)), Message: err.Error(), Cause: err}
}

type hasTimeout interface {
	Timeout() bool
}

// A Set is a set of failure kinds. The nil Set is valid and empty.
type Set map[Kind]struct{}

// DefaultTransient is the transient set used when a retry policy does
// not supply one. It contains KindConnReset, KindInterruptedIO and
// KindInterrupted.
//
// Callers wanting the defaults plus their own kinds should build the
// set with DefaultTransient.With rather than mutating this variable.
var DefaultTransient = NewSet(KindConnReset, KindInterruptedIO, KindInterrupted)

// NewSet constructs a Set containing the given kinds.
func NewSet(kinds ...Kind) Set {
	s := make(Set, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}

	return s
}

// Contains indicates whether kind is a member of the set.
func (s Set) Contains(kind Kind) bool {
	_, ok := s[kind]
	return ok
}

// With returns a new Set containing the members of s plus the given
// kinds. The receiver is left unmodified.
func (s Set) With(kinds ...Kind) Set {
	s2 := make(Set, len(s)+len(kinds))
	for k := range s {
		s2[k] = struct{}{}
	}
	for _, k := range kinds {
		s2[k] = struct{}{}
	}

	return s2
}

// IsTransient indicates whether the failure is eligible for retry under
// the given transient set: true if and only if the failure's kind is a
// member of transient.
//
// IsTransient is a pure function of its inputs. It never mutates the
// set, and a subtype relationship between kinds does not exist: only
// the exact tag is consulted.
func IsTransient(info Info, transient Set) bool {
	return transient.Contains(info.Kind)
}
