package wire

import (
	"errors"
	"io"
	"net"
	"os"
	"syscall"
)

// Stream is the duplex byte source a Conn owns.
//
// Read must not block: when nothing is available it returns an error for
// which IsWouldBlock reports true. Write may block until the whole buffer
// is accepted or fail.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
}

// IsWouldBlock reports whether err is the "no data yet" signal of a
// non-blocking read rather than a real I/O failure.
func IsWouldBlock(err error) bool {
	return errors.Is(err, ErrWouldBlock) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		isErrnoWouldBlock(err)
}

// tcpStream reads from the socket without blocking and writes in blocking mode.
type tcpStream struct {
	*net.TCPConn
	raw syscall.RawConn
}

// NewTCPStream prepares conn for use by a Conn: Nagle's algorithm is
// disabled and reads return ErrWouldBlock instead of waiting for data.
func NewTCPStream(conn *net.TCPConn) (Stream, error) {
	if conn == nil {
		return nil, ErrNilIO
	}
	if err := conn.SetNoDelay(true); err != nil {
		return nil, err
	}
	raw, err := conn.SyscallConn()
	if err != nil {
		return nil, err
	}
	return &tcpStream{TCPConn: conn, raw: raw}, nil
}

// Read implements io.Reader with non-blocking semantics.
func (s *tcpStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := s.readNow(p)
	if err != nil {
		if IsWouldBlock(err) {
			return 0, ErrWouldBlock
		}
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
