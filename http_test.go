package conc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildRequest_ParsesRequestLineAndHeaders(t *testing.T) {
	req, err := buildRequest(nil, "GET /hello HTTP/1.0\r\nHost: example.com\r\ncontent-LENGTH: 5")
	require.NoError(t, err)
	require.Equal(t, "GET", req.Method)
	require.Equal(t, "/hello", req.Path)
	require.Equal(t, "HTTP/1.0", req.Protocol)
	require.Equal(t, 5, req.ContentLength)

	v, ok := GetHeader(req, "content-length")
	require.True(t, ok)
	require.Equal(t, "5", v)

	v, ok = GetHeader(req, "HOST")
	require.True(t, ok)
	require.Equal(t, "example.com", v)
}

func TestBuildRequest_RejectsMissingPath(t *testing.T) {
	_, err := buildRequest(nil, "GET HTTP/1.0")
	require.Error(t, err)
	require.IsType(t, ProtocolMalformedError{}, err)
}

func TestSetHeader_UpsertsCaseInsensitively(t *testing.T) {
	req := &Request{}
	SetHeader(req, "Content-Type", "text/plain")
	SetHeader(req, "content-type", "application/json")

	v, ok := GetHeaderList(req)
	require.True(t, ok)
	require.Equal(t, "application/json", v)
}

func GetHeaderList(req *Request) (string, bool) {
	count := 0
	var last string
	for h := req.resHeaders; h != nil; h = h.next {
		count++
		last = h.value
	}
	return last, count == 1
}

func TestWriteHead_RejectsSecondCall(t *testing.T) {
	sched, err := NewScheduler()
	require.NoError(t, err)

	r, w, err := newTestPipe()
	require.NoError(t, err)
	defer closeSocket(r)
	defer closeSocket(w)

	req := &Request{conn: &Conn{sched: sched, fd: w}}

	var firstErr, secondErr error
	sched.Run(func() {
		sched.Spawn(func() {
			firstErr = WriteHead(req, 200, "OK")
			secondErr = WriteHead(req, 500, "Internal Server Error")
		})
	})

	require.NoError(t, firstErr)
	require.Error(t, secondErr)

	buf := make([]byte, 256)
	n, err := sockRead(r, buf)
	require.NoError(t, err)
	require.Contains(t, string(buf[:n]), "HTTP/1.0 200 OK")
}

func TestWriteBody_AutoContentLengthAndClose(t *testing.T) {
	sched, err := NewScheduler()
	require.NoError(t, err)

	r, w, err := newTestPipe()
	require.NoError(t, err)
	defer closeSocket(r)

	req := &Request{conn: &Conn{sched: sched, fd: w}}

	var writeErr error
	sched.Run(func() {
		sched.Spawn(func() {
			writeErr = WriteBody(req, []byte("hello\n"))
		})
	})

	require.NoError(t, writeErr)
	require.True(t, req.closed)

	buf := make([]byte, 256)
	n, err := sockRead(r, buf)
	require.NoError(t, err)
	out := string(buf[:n])
	require.Contains(t, out, "HTTP/1.0 200 OK")
	require.Contains(t, out, "Content-Length: 6")
	require.Contains(t, out, "hello\n")
}
