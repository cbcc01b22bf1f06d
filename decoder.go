package wire

import (
	"fmt"
	"io"
)

// Decoder reads messages from a blocking io.Reader.
//
// It reads exactly the shortfall each probe reports, so it never consumes a
// byte past the end of the current message. It tracks the first error;
// subsequent Decode calls return it.
type Decoder[M any] struct {
	r     io.Reader
	codec Codec[M]
	buf   queue
	count int64 // total bytes read
	err   error // first error encountered
}

// NewDecoder creates a Decoder reading c-encoded messages from r.
func NewDecoder[M any](r io.Reader, c Codec[M]) (*Decoder[M], error) {
	if r == nil {
		return nil, ErrNilIO
	}
	return &Decoder[M]{r: r, codec: c, buf: newQueue(defaultBufferSize)}, nil
}

// Decode blocks until one whole message has been read.
// A clean end of stream between messages is io.EOF; inside a message it is
// io.ErrUnexpectedEOF.
func (d *Decoder[M]) Decode() (M, error) {
	var zero M
	if d.err != nil {
		return zero, d.err
	}

	for {
		r := d.codec.Probe(d.buf.Bytes())
		switch r.State {
		case StateComplete:
			m, _, err := d.codec.Decode(d.buf.Bytes()[:r.N])
			d.buf.consume(r.N)
			if err != nil {
				d.setError(err)
				return zero, err
			}
			return m, nil

		case StateIncomplete:
			if r.N <= 0 {
				d.setError(fmt.Errorf("%w: probe reported shortfall %d", ErrInvalidMessage, r.N))
				return zero, d.err
			}
			started := d.buf.Len() > 0
			n, err := io.ReadFull(d.r, d.buf.tail(r.N))
			d.buf.commit(n)
			d.count += int64(n)
			if err != nil {
				if err == io.EOF && started {
					// To provide a more specific error for callers;
					// a partial message is different from a clean end-of-stream.
					err = io.ErrUnexpectedEOF
				}
				d.setError(err)
				return zero, err
			}

		default:
			d.setError(ErrInvalidMessage)
			return zero, ErrInvalidMessage
		}
	}
}

func (d *Decoder[M]) Count() int64  { return d.count }
func (d *Decoder[M]) Err() error    { return d.err }
func (d *Decoder[M]) IsEOF() bool   { return d.err == io.EOF }
func (d *Decoder[M]) Buffered() int { return d.buf.Len() }

// setError records the first non-nil error.
func (d *Decoder[M]) setError(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}
