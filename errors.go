// Package conc implements a stackful cooperative-coroutine runtime,
// a per-fiber arena allocator, and a poll-driven non-blocking HTTP
// server built on top of them.
package conc

import (
	"fmt"
)

// OutOfMemoryError reports an arena or fiber-stack allocation failure.
// Per spec.md §7 this is fatal at the scope of the failing fiber.
type OutOfMemoryError struct {
	Requested int
}

func (e OutOfMemoryError) Error() string {
	return fmt.Sprintf("conc: out of memory allocating %d bytes", e.Requested)
}

// ProtocolMalformedError reports a request line or header block the
// HTTP parser could not make sense of.
type ProtocolMalformedError struct {
	Reason string
}

func (e ProtocolMalformedError) Error() string {
	return fmt.Sprintf("conc: malformed request: %s", e.Reason)
}

// IOPermanentError wraps a non-retryable read/write/accept failure.
// Unwrap exposes the underlying error for errors.Is/errors.As.
type IOPermanentError struct {
	Op  string
	Err error
}

func (e IOPermanentError) Error() string {
	return fmt.Sprintf("conc: %s: %v", e.Op, e.Err)
}

func (e IOPermanentError) Unwrap() error {
	return e.Err
}

// RouteNotFoundError is constructed by Router.dispatch and logged
// before falling through to the default 404 endpoint; it is never
// surfaced to handler code.
type RouteNotFoundError struct {
	Method string
	Path   string
}

func (e RouteNotFoundError) Error() string {
	return fmt.Sprintf("conc: no route for %s %s", e.Method, e.Path)
}

// InvariantViolationError marks a scheduler or poller contract breach —
// a programmer bug, not a recoverable condition. The scheduler panics
// with this type rather than returning an error.
type InvariantViolationError struct {
	Detail string
}

func (e InvariantViolationError) Error() string {
	return fmt.Sprintf("conc: invariant violation: %s", e.Detail)
}

// wrapError attaches a message to cause, preserving it for errors.Is
// and errors.As via fmt.Errorf's %w verb. Returns nil if cause is nil.
func wrapError(message string, cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, cause)
}
