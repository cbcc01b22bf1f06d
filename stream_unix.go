//go:build unix

package wire

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isErrnoWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

// readNow issues a single read(2) on the socket. The runtime keeps the fd in
// non-blocking mode, so EAGAIN comes back instead of parking the goroutine.
func (s *tcpStream) readNow(p []byte) (int, error) {
	var (
		n    int
		rerr error
	)
	err := s.raw.Read(func(fd uintptr) bool {
		n, rerr = unix.Read(int(fd), p)
		return true
	})
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = 0
	}
	return n, rerr
}
