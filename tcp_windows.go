//go:build windows

package conc

import "golang.org/x/sys/windows"

// See tcp_unix.go for the role these primitives play.

func setNonblocking(fd int) error {
	var nonblocking uint32 = 1
	return windows.Ioctlsocket(windows.Handle(fd), windows.FIONBIO, &nonblocking)
}

func sockAccept(fd int) (int, error) {
	nfd, err := windows.Accept(windows.Handle(fd))
	return int(nfd), err
}

func sockRead(fd int, buf []byte) (int, error) {
	return windows.Recv(windows.Handle(fd), buf, 0)
}

func sockWrite(fd int, buf []byte) (int, error) {
	return windows.Send(windows.Handle(fd), buf, 0)
}

func closeSocket(fd int) error {
	return windows.Closesocket(windows.Handle(fd))
}

func isWouldBlock(err error) bool {
	return err == windows.WSAEWOULDBLOCK
}
