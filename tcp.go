package conc

import (
	"net"
	"strings"
)

// Conn is a non-blocking TCP connection bound to a Scheduler: every
// read or write that would otherwise block suspends the calling fiber
// via Scheduler.WaitRead/WaitWrite instead of the OS thread (spec.md
// §4.E). The accepted socket's fd is extracted once at accept time and
// all I/O on it goes through the raw sockRead/sockWrite/sockAccept
// primitives in tcp_unix.go/tcp_windows.go, bypassing net.Conn's own
// (goroutine-parking) Read/Write so that suspension always passes
// through the scheduler's driver.
type Conn struct {
	sched  *Scheduler
	fd     int
	closed bool
}

// FD returns the connection's raw file descriptor.
func (c *Conn) FD() int {
	return c.fd
}

// Close closes the underlying socket. Idempotent: a connection already
// closed by WriteBody's own close (http.go) is left alone rather than
// closing a since-reused fd number a second time.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return closeSocket(c.fd)
}

// Read reads into buf, suspending on the calling fiber until data is
// available. May return fewer than len(buf) bytes: a 0-byte, nil-error
// result means the peer closed the connection (spec.md §4.E, §7
// PeerClosed).
func (c *Conn) Read(buf []byte) (int, error) {
	for {
		n, err := sockRead(c.fd, buf)
		if err == nil {
			return n, nil
		}
		if isWouldBlock(err) {
			c.sched.WaitRead(c.fd)
			continue
		}
		return 0, IOPermanentError{Op: "read", Err: err}
	}
}

// ReadUntil reads into buf until delim appears in the bytes
// accumulated so far, buf fills, or the peer closes, suspending on
// EAGAIN/EWOULDBLOCK (spec.md §4.E). Returns the number of bytes
// accumulated, or -1 on a permanent error, regardless of how much was
// already read.
func (c *Conn) ReadUntil(buf []byte, delim string) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := sockRead(c.fd, buf[total:])
		if err != nil {
			if isWouldBlock(err) {
				c.sched.WaitRead(c.fd)
				continue
			}
			return -1, IOPermanentError{Op: "read", Err: err}
		}
		if n == 0 {
			return total, nil
		}
		total += n
		if strings.Contains(string(buf[:total]), delim) {
			return total, nil
		}
	}
	return total, nil
}

// Write writes all of buf, suspending on EAGAIN/EWOULDBLOCK and
// retrying on partial writes (spec.md §4.E).
func (c *Conn) Write(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := sockWrite(c.fd, buf[total:])
		if err != nil {
			if isWouldBlock(err) {
				c.sched.WaitWrite(c.fd)
				continue
			}
			return total, IOPermanentError{Op: "write", Err: err}
		}
		total += n
	}
	return total, nil
}

// ListenTCP binds port on every interface, then loops forever: suspend
// on accept-readiness, accept, and spawn a fiber running handler(conn)
// per connection — the raw byte-oriented substrate Server.ListenAndServe
// builds on, and also usable directly for non-HTTP protocols
// (original_source/source/app/4-network.h's network_listen_tcp, as
// exercised standalone by echo.c; spec.md §4.E only specifies the
// HTTP-parsing listen(port), this is the supplemented raw form).
func ListenTCP(sched *Scheduler, port int, handler func(conn *Conn)) error {
	ln, err := net.ListenTCP("tcp", &net.TCPAddr{Port: port})
	if err != nil {
		return IOPermanentError{Op: "listen", Err: err}
	}

	lraw, err := ln.SyscallConn()
	if err != nil {
		return IOPermanentError{Op: "listen", Err: err}
	}

	var lfd int
	var ctrlErr error
	if err := lraw.Control(func(fd uintptr) {
		lfd = int(fd)
		ctrlErr = setNonblocking(lfd)
	}); err != nil {
		return IOPermanentError{Op: "listen", Err: err}
	}
	if ctrlErr != nil {
		return IOPermanentError{Op: "listen", Err: ctrlErr}
	}

	for {
		sched.WaitRead(lfd)

		cfd, err := sockAccept(lfd)
		if err != nil {
			if isWouldBlock(err) {
				// race between two activations of the listener fiber
				continue
			}
			logWarn(sched.logger, "tcp", "accept failed", err)
			continue
		}

		if err := setNonblocking(cfd); err != nil {
			closeSocket(cfd)
			logWarn(sched.logger, "tcp", "failed to set accepted socket non-blocking", err)
			continue
		}

		if sched.metrics != nil {
			sched.metrics.AcceptRate.Increment()
		}

		conn := &Conn{sched: sched, fd: cfd}
		sched.Spawn(func() {
			defer conn.Close()
			handler(conn)
		})
	}
}
