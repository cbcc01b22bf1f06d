package wire

import "slices"

// queue holds the bytes received so far that have not yet been attributed
// to a decoded message. Bytes are appended at the tail and a decoded prefix
// is removed from the head; nothing is ever reordered.
type queue struct {
	b   []byte
	off int // start of unconsumed data
}

func newQueue(size int) queue {
	return queue{b: make([]byte, 0, size)}
}

// Len returns the number of unconsumed bytes.
func (q *queue) Len() int { return len(q.b) - q.off }

// Bytes returns a view of the unconsumed bytes, valid until the next tail call.
func (q *queue) Bytes() []byte { return q.b[q.off:] }

// tail returns a writable slice of exactly n bytes directly after the
// buffered data. Call commit with the number of bytes actually filled.
func (q *queue) tail(n int) []byte {
	if cap(q.b)-len(q.b) < n && q.off > 0 {
		// Reclaim the consumed head before growing.
		m := copy(q.b, q.b[q.off:])
		q.b = q.b[:m]
		q.off = 0
	}
	q.b = slices.Grow(q.b, n)
	return q.b[len(q.b) : len(q.b)+n]
}

func (q *queue) commit(n int) {
	q.b = q.b[:len(q.b)+n]
}

// consume drops exactly n bytes from the head.
func (q *queue) consume(n int) {
	q.off += n
	if q.off >= len(q.b) {
		q.b = q.b[:0]
		q.off = 0
	}
}
