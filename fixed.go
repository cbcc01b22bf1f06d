package wire

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the cost of reflection in `binary.Size` on every call.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// Struct is a codec for any struct `T` composed of fixed-size fields,
// encoded field by field in big-endian order with no padding.
//
// Constraint: `T` MUST NOT contain slices, maps or strings; StructOf rejects them.
type Struct[T any] struct {
	width int
}

var _ Sized[struct{ A uint8 }] = Struct[struct{ A uint8 }]{}

// StructOf returns the codec for T, computing its width once per type.
func StructOf[T any]() (Struct[T], error) {
	width := structWidth[T]()
	if width <= 0 {
		var v T
		return Struct[T]{}, fmt.Errorf("%w: %T", ErrVariableSize, v)
	}
	return Struct[T]{width: width}, nil
}

// MustStruct is like StructOf but panics on a variable-size type.
func MustStruct[T any]() Struct[T] {
	c, err := StructOf[T]()
	if err != nil {
		panic(err)
	}
	return c
}

func structWidth[T any]() int {
	typ := reflect.TypeFor[T]()

	// Attempt to load from the concurrent-safe cache first for performance.
	if size, ok := sizeCache.Load(typ); ok {
		return size
	}

	var v T
	size := binary.Size(&v)
	sizeCache.Store(typ, size)
	return size
}

func (c Struct[T]) Width() int                   { return c.width }
func (c Struct[T]) MinSize() int                 { return c.width }
func (c Struct[T]) Probe(src []byte) ProbeResult { return probeWidth(src, c.width) }

func (c Struct[T]) Append(dst []byte, v T) ([]byte, error) {
	return binary.Append(dst, order, &v)
}

func (c Struct[T]) Decode(src []byte) (T, []byte, error) {
	var v T
	if len(src) < c.width {
		return v, src, ErrTruncatedData
	}
	n, err := binary.Decode(src, order, &v)
	if err != nil {
		return v, src, ErrTruncatedData // binary.Decode only fails on a short buffer here
	}
	return v, src[n:], nil
}
