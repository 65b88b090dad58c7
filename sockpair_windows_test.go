//go:build windows

package conc

import "net"

// newTestPipe returns a non-blocking loopback TCP connection pair
// (r, w) — WSAPoll only operates on sockets, not arbitrary pipe
// handles, so Windows tests use a real loopback connection instead of
// a named/anonymous pipe.
func newTestPipe() (int, int, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, 0, err
	}
	defer ln.Close()

	acceptErr := make(chan error, 1)
	var serverConn net.Conn
	go func() {
		c, err := ln.Accept()
		serverConn = c
		acceptErr <- err
	}()

	clientConn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		return 0, 0, err
	}
	if err := <-acceptErr; err != nil {
		return 0, 0, err
	}

	rfd, err := extractFD(serverConn.(*net.TCPConn))
	if err != nil {
		return 0, 0, err
	}
	wfd, err := extractFD(clientConn.(*net.TCPConn))
	if err != nil {
		return 0, 0, err
	}
	if err := setNonblocking(rfd); err != nil {
		return 0, 0, err
	}
	if err := setNonblocking(wfd); err != nil {
		return 0, 0, err
	}
	return rfd, wfd, nil
}

func extractFD(conn *net.TCPConn) (int, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return 0, err
	}
	var fd int
	ctrlErr := raw.Control(func(f uintptr) {
		fd = int(f)
	})
	if ctrlErr != nil {
		return 0, ctrlErr
	}
	return fd, nil
}
