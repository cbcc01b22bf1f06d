package wire

import (
	"fmt"
	"math"
)

// prefixWidth is the size of the big-endian byte-length prefix in front of every sequence.
const prefixWidth = 2

// MaxSequenceBytes is the largest payload a sequence can carry.
const MaxSequenceBytes = math.MaxUint16

// seq encodes a homogeneous sequence as [u16 byte length][payload].
// The prefix counts bytes, not elements.
type seq[T any] struct {
	elem Sized[T]
}

// Seq returns the length-prefixed sequence codec for elem.
func Seq[T any](elem Sized[T]) Codec[[]T] {
	return seq[T]{elem: elem}
}

func (seq[T]) MinSize() int { return prefixWidth }

func (c seq[T]) Append(dst []byte, v []T) ([]byte, error) {
	n := len(v) * c.elem.Width()
	if n > MaxSequenceBytes {
		return dst, fmt.Errorf("%w: %d bytes", ErrSequenceTooLong, n)
	}
	dst = order.AppendUint16(dst, uint16(n))
	var err error
	for _, e := range v {
		if dst, err = c.elem.Append(dst, e); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

func (c seq[T]) Decode(src []byte) ([]T, []byte, error) {
	if len(src) < prefixWidth {
		return nil, src, ErrTruncatedData
	}
	n := int(order.Uint16(src))
	rest := src[prefixWidth:]
	if n > len(rest) {
		return nil, src, fmt.Errorf("%w: sequence declares %d bytes, %d available", ErrTruncatedData, n, len(rest))
	}
	width := c.elem.Width()
	if n%width != 0 {
		return nil, src, fmt.Errorf("%w: %d bytes, element width %d", ErrMisalignedSequence, n, width)
	}

	out := make([]T, 0, n/width)
	payload := rest[:n]
	for len(payload) > 0 {
		e, tail, err := c.elem.Decode(payload)
		if err != nil {
			return nil, src, err
		}
		out = append(out, e)
		payload = tail
	}
	return out, rest[n:], nil
}

func (c seq[T]) Probe(src []byte) ProbeResult {
	if len(src) < prefixWidth {
		return Incomplete(prefixWidth - len(src))
	}
	n := int(order.Uint16(src))
	if n%c.elem.Width() != 0 {
		return Invalid()
	}
	if avail := len(src) - prefixWidth; n > avail {
		return Incomplete(n - avail)
	}
	return Complete(prefixWidth + n)
}
