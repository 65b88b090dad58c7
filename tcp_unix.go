//go:build unix

package conc

import "golang.org/x/sys/unix"

// setNonblocking, sockAccept, sockRead, sockWrite, and closeSocket are
// the raw-fd primitives tcp.go suspends fibers around; kept in their
// own build-tagged file the same way poller_unix.go/poller_windows.go
// split the scheduler's readiness check.

func setNonblocking(fd int) error {
	return unix.SetNonblock(fd, true)
}

func sockAccept(fd int) (int, error) {
	nfd, _, err := unix.Accept(fd)
	return nfd, err
}

func sockRead(fd int, buf []byte) (int, error) {
	for {
		n, err := unix.Read(fd, buf)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

func sockWrite(fd int, buf []byte) (int, error) {
	for {
		n, err := unix.Write(fd, buf)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

func closeSocket(fd int) error {
	return unix.Close(fd)
}

func isWouldBlock(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}
