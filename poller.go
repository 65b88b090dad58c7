// poller.go declares the interface the scheduler driver uses to check
// readiness of the current wait set in one pass. Platform
// implementations live in poller_unix.go (golang.org/x/sys/unix.Poll)
// and poller_windows.go (golang.org/x/sys/windows.WSAPoll) — a single
// poll(2)-equivalent call per scheduler pass over exactly the fds
// currently waited on, not a persistent epoll/kqueue registration.
// See DESIGN.md for why this replaces the teacher's FastPoller.
package conc

// poller performs one readiness check over reqs, returning a
// same-length slice where a true entry marks the corresponding pollReq
// as ready (spec.md §4.D: "single poll-fd array kept in lockstep with
// waiting fibers"). A timeoutMs of -1 blocks until at least one fd is
// ready; 0 polls without blocking.
type poller interface {
	poll(reqs []pollReq, timeoutMs int) ([]bool, error)
}
