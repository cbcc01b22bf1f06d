package wire

import (
	"io"
	"sync"
)

// MemStream is an in-memory Stream for tests and simulations.
//
// Bytes handed to Feed become readable in order; Read returns ErrWouldBlock
// when nothing is pending and io.EOF once CloseWrite was called and the
// pending bytes are drained. Everything passed to Write is collected and
// returned by Written. MaxWrite, when positive, caps the bytes accepted per
// Write to simulate short writes.
type MemStream struct {
	mu       sync.Mutex
	in       []byte // pending incoming bytes
	out      []byte // collected outgoing bytes
	eof      bool
	closed   bool
	reads    int
	MaxWrite int
	WriteErr error
}

var _ Stream = (*MemStream)(nil)

// NewMemStream returns an empty MemStream.
func NewMemStream() *MemStream {
	return &MemStream{}
}

// Feed queues p for subsequent reads.
func (s *MemStream) Feed(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.in = append(s.in, p...)
}

// CloseWrite marks the peer side as closed: reads return io.EOF once the
// queued bytes are consumed.
func (s *MemStream) CloseWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eof = true
}

// Read implements io.Reader with non-blocking semantics.
func (s *MemStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	if len(p) == 0 {
		return 0, nil
	}
	s.reads++
	if len(s.in) == 0 {
		if s.eof {
			return 0, io.EOF
		}
		return 0, ErrWouldBlock
	}
	n := copy(p, s.in)
	s.in = s.in[n:]
	return n, nil
}

// Write implements io.Writer.
func (s *MemStream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	if s.WriteErr != nil {
		return 0, s.WriteErr
	}
	n := len(p)
	if s.MaxWrite > 0 && n > s.MaxWrite {
		n = s.MaxWrite
	}
	s.out = append(s.out, p[:n]...)
	return n, nil
}

// Close implements io.Closer.
func (s *MemStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Written returns a copy of everything written so far.
func (s *MemStream) Written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.out...)
}

// Pending returns the number of fed bytes not read yet.
func (s *MemStream) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.in)
}

// Reads returns how many non-empty Read calls were made.
func (s *MemStream) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}
