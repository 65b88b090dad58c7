//go:build unix

package conc

import "golang.org/x/sys/unix"

// unixPoller implements poller with a single unix.Poll call per
// scheduler pass, mirroring original_source/source/3-runtime.h's
// literal poll(2) usage in runtime_continue.
type unixPoller struct{}

func newPoller() poller {
	return unixPoller{}
}

func (unixPoller) poll(reqs []pollReq, timeoutMs int) ([]bool, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	fds := make([]unix.PollFd, len(reqs))
	for i, r := range reqs {
		var events int16
		if r.readable {
			events |= unix.POLLIN
		}
		if r.writable {
			events |= unix.POLLOUT
		}
		fds[i] = unix.PollFd{Fd: int32(r.fd), Events: events}
	}

	for {
		_, err := unix.Poll(fds, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	ready := make([]bool, len(reqs))
	for i, fd := range fds {
		ready[i] = fd.Revents != 0
	}
	return ready, nil
}
