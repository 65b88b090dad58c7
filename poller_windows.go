//go:build windows

package conc

import "golang.org/x/sys/windows"

// windowsPoller implements poller with a single windows.WSAPoll call
// per scheduler pass — the same transient-snapshot contract as
// poller_unix.go's unix.Poll, rather than the teacher's IOCP-based
// FastPoller (built for persistent FD registration, which this
// scheduler's rebuild-every-pass poll set does not need).
type windowsPoller struct{}

func newPoller() poller {
	return windowsPoller{}
}

func (windowsPoller) poll(reqs []pollReq, timeoutMs int) ([]bool, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	fds := make([]windows.WSAPollFd, len(reqs))
	for i, r := range reqs {
		var events int16
		if r.readable {
			events |= windows.POLLRDNORM
		}
		if r.writable {
			events |= windows.POLLWRNORM
		}
		fds[i] = windows.WSAPollFd{Fd: windows.Handle(r.fd), Events: events}
	}

	if _, err := windows.WSAPoll(fds, timeoutMs); err != nil {
		return nil, err
	}

	ready := make([]bool, len(reqs))
	for i, fd := range fds {
		ready[i] = fd.REvents != 0
	}
	return ready, nil
}
