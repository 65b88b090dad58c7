//go:build unix

package conc

import "golang.org/x/sys/unix"

// newTestPipe returns a non-blocking unix pipe (r, w) usable with
// unix.Poll exactly like a socket fd, for scheduler/poller tests that
// need a controllable readiness source.
func newTestPipe() (int, int, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return 0, 0, err
	}
	if err := setNonblocking(fds[0]); err != nil {
		return 0, 0, err
	}
	if err := setNonblocking(fds[1]); err != nil {
		return 0, 0, err
	}
	return fds[0], fds[1], nil
}
