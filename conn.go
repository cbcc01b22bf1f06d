package wire

import (
	"fmt"
	"io"
	"net"

	"github.com/rs/zerolog"
)

// SendStatus is the outcome of Conn.Send.
type SendStatus uint8

const (
	// SendOK means the whole encoding was handed to the stream.
	SendOK SendStatus = iota
	// SendDisconnected means the write failed; the connection is dead.
	SendDisconnected
	// SendInvalid means the message could not be encoded; nothing was written.
	SendInvalid
)

func (s SendStatus) String() string {
	switch s {
	case SendOK:
		return "ok"
	case SendDisconnected:
		return "disconnected"
	case SendInvalid:
		return "invalid"
	}
	return fmt.Sprintf("SendStatus(%d)", uint8(s))
}

// RecvStatus is the outcome of Conn.Recv.
type RecvStatus uint8

const (
	// RecvMessage means one whole message was decoded.
	RecvMessage RecvStatus = iota
	// RecvNotReady means the stream has no more data for now; call Recv again later.
	RecvNotReady
	// RecvDisconnected means the peer closed the stream or a read failed.
	RecvDisconnected
	// RecvInvalid means the buffered bytes can never form a valid message.
	RecvInvalid
)

func (s RecvStatus) String() string {
	switch s {
	case RecvMessage:
		return "message"
	case RecvNotReady:
		return "not_ready"
	case RecvDisconnected:
		return "disconnected"
	case RecvInvalid:
		return "invalid"
	}
	return fmt.Sprintf("RecvStatus(%d)", uint8(s))
}

type connState uint8

const (
	stateOpen connState = iota
	stateDisconnected
	stateInvalid
)

func (s connState) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateDisconnected:
		return "disconnected"
	default:
		return "invalid"
	}
}

// Conn reassembles whole messages out of a non-blocking Stream.
//
// Every call does its work inline; there is no background goroutine. A Conn
// is owned by one caller at a time and needs external locking otherwise.
// Once Send or Recv has reported a disconnected or invalid outcome, every
// later call reports the same outcome and the owner should Close the Conn.
type Conn[M any] struct {
	stream   Stream
	codec    Codec[M]
	buf      queue
	required int // cached shortfall, 0 when unknown
	state    connState
	err      error // first terminal error
	log      zerolog.Logger
	observer Observer
}

// NewConn takes ownership of an already established stream s.
func NewConn[M any](s Stream, c Codec[M], opts ...Option) *Conn[M] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Conn[M]{
		stream:   s,
		codec:    c,
		buf:      newQueue(o.bufferSize),
		log:      o.logger,
		observer: o.observer,
	}
}

// FromTCP wraps conn with NewTCPStream and returns a Conn over it.
func FromTCP[M any](conn *net.TCPConn, c Codec[M], opts ...Option) (*Conn[M], error) {
	s, err := NewTCPStream(conn)
	if err != nil {
		return nil, err
	}
	return NewConn(s, c, opts...), nil
}

// Err returns the error that ended the connection, or nil while it is usable.
func (c *Conn[M]) Err() error { return c.err }

// Buffered returns the number of received bytes not yet decoded.
func (c *Conn[M]) Buffered() int { return c.buf.Len() }

// Pending returns the cached shortfall, or 0 when none is recorded.
func (c *Conn[M]) Pending() int { return c.required }

// Close releases the stream and discards any partial message.
func (c *Conn[M]) Close() error {
	if c.state == stateOpen {
		c.state = stateDisconnected
		c.err = fmt.Errorf("%w: %w", ErrDisconnected, net.ErrClosed)
	}
	return c.stream.Close()
}

// Send encodes m and hands the encoding to the stream in one write.
func (c *Conn[M]) Send(m M) SendStatus {
	status, n := c.send(m)
	c.observer.ObserveSend(status, n)
	return status
}

func (c *Conn[M]) send(m M) (SendStatus, int) {
	switch c.state {
	case stateDisconnected:
		return SendDisconnected, 0
	case stateInvalid:
		return SendInvalid, 0
	}

	bp := getEncodeBuf()
	defer putEncodeBuf(bp)

	out, err := c.codec.Append(*bp, m)
	if err != nil {
		c.fail(stateInvalid, "send", err)
		return SendInvalid, 0
	}
	*bp = out

	n, err := c.stream.Write(out)
	if err == nil && n < len(out) {
		err = io.ErrShortWrite
	}
	if err != nil {
		c.fail(stateDisconnected, "send", err)
		return SendDisconnected, 0
	}
	return SendOK, n
}

// Recv returns the next message once all of its bytes have arrived.
//
// RecvNotReady is not an error: the stream simply had nothing more to offer.
// Bytes that belong to the following message stay buffered for the next call.
func (c *Conn[M]) Recv() (M, RecvStatus) {
	m, status, n := c.recv()
	c.observer.ObserveRecv(status, n)
	return m, status
}

func (c *Conn[M]) recv() (M, RecvStatus, int) {
	var zero M
	switch c.state {
	case stateDisconnected:
		return zero, RecvDisconnected, 0
	case stateInvalid:
		return zero, RecvInvalid, 0
	}

	want, err := c.wanted()
	if err != nil {
		c.fail(stateInvalid, "recv", err)
		return zero, RecvInvalid, 0
	}

	// Each pass reads exactly the outstanding shortfall. A pass only repeats
	// after the full shortfall arrived and the probe asked for a positive
	// number of further bytes, so the buffer grows strictly on every pass and
	// a starved stream ends the loop with RecvNotReady.
	for {
		if want > 0 {
			n, err := c.fill(want)
			if err != nil {
				if !IsWouldBlock(err) {
					c.fail(stateDisconnected, "recv", err)
					return zero, RecvDisconnected, 0
				}
				if n == 0 {
					return zero, RecvNotReady, 0
				}
			}
			if n < want {
				c.required = want - n
				return zero, RecvNotReady, 0
			}
		}

		r := c.codec.Probe(c.buf.Bytes())
		switch r.State {
		case StateComplete:
			m, _, err := c.codec.Decode(c.buf.Bytes()[:r.N])
			c.buf.consume(r.N)
			c.required = 0
			if err != nil {
				c.fail(stateInvalid, "recv", err)
				return zero, RecvInvalid, 0
			}
			return m, RecvMessage, r.N
		case StateIncomplete:
			if r.N <= 0 {
				c.fail(stateInvalid, "recv", fmt.Errorf("%w: probe reported shortfall %d", ErrInvalidMessage, r.N))
				return zero, RecvInvalid, 0
			}
			c.required = r.N
			want = r.N
		default:
			c.fail(stateInvalid, "recv", ErrInvalidMessage)
			return zero, RecvInvalid, 0
		}
	}
}

// wanted decides how many bytes this Recv call asks the stream for.
func (c *Conn[M]) wanted() (int, error) {
	if c.required > 0 {
		return c.required, nil
	}
	if c.buf.Len() == 0 {
		return c.codec.MinSize(), nil
	}
	switch r := c.codec.Probe(c.buf.Bytes()); r.State {
	case StateComplete:
		return 0, nil
	case StateIncomplete:
		return r.N, nil
	default:
		return 0, ErrInvalidMessage
	}
}

// fill performs one read of at most n bytes into the buffer tail.
func (c *Conn[M]) fill(n int) (int, error) {
	read, err := c.stream.Read(c.buf.tail(n))
	if read < 0 || read > n {
		return 0, ErrInvalidRead
	}
	c.buf.commit(read)
	return read, err
}

func (c *Conn[M]) fail(state connState, op string, err error) {
	if state == stateDisconnected {
		err = fmt.Errorf("%w: %w", ErrDisconnected, err)
	}
	c.state = state
	c.err = err
	c.log.Debug().
		Err(err).
		Str("op", op).
		Str("state", state.String()).
		Int("buffered", c.buf.Len()).
		Msg("wire: connection closed to further use")
}
