package wire

import "io"

// Encoder writes messages to a blocking io.Writer, one full encoding per Write.
// It tracks the first write error; subsequent Encode calls return it without writing.
type Encoder[M any] struct {
	w     io.Writer
	codec Codec[M]
	count int64 // total bytes written
	err   error // first write error encountered
}

// NewEncoder creates an Encoder writing c-encoded messages to w.
func NewEncoder[M any](w io.Writer, c Codec[M]) (*Encoder[M], error) {
	if w == nil {
		return nil, ErrNilIO
	}
	return &Encoder[M]{w: w, codec: c}, nil
}

// Encode writes m. An encoding failure is returned without touching the
// writer and does not poison the Encoder.
func (e *Encoder[M]) Encode(m M) error {
	if e.err != nil {
		return e.err
	}

	bp := getEncodeBuf()
	defer putEncodeBuf(bp)

	out, err := e.codec.Append(*bp, m)
	if err != nil {
		return err
	}
	*bp = out

	n, err := e.w.Write(out)
	e.count += int64(n)
	if err == nil && n < len(out) {
		err = io.ErrShortWrite
	}
	e.setError(err)
	return err
}

func (e *Encoder[M]) Count() int64 { return e.count }
func (e *Encoder[M]) Err() error   { return e.err }

// setError records the first non-nil error.
func (e *Encoder[M]) setError(err error) {
	if e.err == nil && err != nil {
		e.err = err
	}
}
