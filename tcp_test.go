package conc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestConn_ReadUntilFindsDelimiter covers the ReadUntil delimiter path
// of spec.md §4.E: both pieces are written before the reader runs, and
// ReadUntil stops reading once delim is present, reporting every byte
// accumulated so far, including those after delim.
func TestConn_ReadUntilFindsDelimiter(t *testing.T) {
	sched, err := NewScheduler()
	require.NoError(t, err)

	r, w, err := newTestPipe()
	require.NoError(t, err)
	defer closeSocket(r)
	defer closeSocket(w)

	conn := &Conn{sched: sched, fd: r}

	var n int
	var readErr error
	sched.Run(func() {
		sched.Spawn(func() {
			buf := make([]byte, 64)
			n, readErr = conn.ReadUntil(buf, "\n")
			_ = buf
		})
		_, err := sockWrite(w, []byte("hel"))
		require.NoError(t, err)
		_, err = sockWrite(w, []byte("lo\nworld"))
		require.NoError(t, err)
	})

	require.NoError(t, readErr)
	require.Equal(t, len("hello\nworld"), n)
}

// TestConn_ReadUntilReportsPeerClose covers spec.md §4.E's "read of 0
// bytes" rule: ReadUntil returns the accumulated length, not an error,
// when the peer closes before delim appears.
func TestConn_ReadUntilReportsPeerClose(t *testing.T) {
	sched, err := NewScheduler()
	require.NoError(t, err)

	r, w, err := newTestPipe()
	require.NoError(t, err)
	defer closeSocket(r)

	conn := &Conn{sched: sched, fd: r}

	var n int
	var readErr error
	sched.Run(func() {
		sched.Spawn(func() {
			buf := make([]byte, 64)
			n, readErr = conn.ReadUntil(buf, "\n")
		})
		_, err := sockWrite(w, []byte("partial"))
		require.NoError(t, err)
		closeSocket(w)
	})

	require.NoError(t, readErr)
	require.Equal(t, len("partial"), n)
}

// TestConn_WriteRetriesOnPartialWrite covers spec.md §4.E's write
// contract: the payload is larger than the pipe buffer, so Write sees
// partial writes and EAGAIN and loops until all n bytes are delivered.
func TestConn_WriteRetriesOnPartialWrite(t *testing.T) {
	sched, err := NewScheduler()
	require.NoError(t, err)

	r, w, err := newTestPipe()
	require.NoError(t, err)
	defer closeSocket(r)
	defer closeSocket(w)

	conn := &Conn{sched: sched, fd: w}
	payload := make([]byte, 1<<20)
	for i := range payload {
		payload[i] = byte(i)
	}

	var written int
	var writeErr error
	received := make([]byte, 0, len(payload))

	sched.Run(func() {
		sched.Spawn(func() {
			written, writeErr = conn.Write(payload)
		})
		sched.Spawn(func() {
			buf := make([]byte, 1024)
			for len(received) < len(payload) {
				n, err := (&Conn{sched: sched, fd: r}).Read(buf)
				if err != nil || n == 0 {
					break
				}
				received = append(received, buf[:n]...)
			}
		})
	})

	require.NoError(t, writeErr)
	require.Equal(t, len(payload), written)
	require.Equal(t, payload, received)
}
