//go:build !unix

package wire

import "time"

// pollInterval bounds how long a read waits when the platform offers no
// direct non-blocking read on the socket.
const pollInterval = time.Millisecond

func isErrnoWouldBlock(error) bool { return false }

func (s *tcpStream) readNow(p []byte) (int, error) {
	if err := s.SetReadDeadline(time.Now().Add(pollInterval)); err != nil {
		return 0, err
	}
	return s.TCPConn.Read(p)
}
