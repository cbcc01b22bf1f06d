package wire

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// order is the canonical byte order of every multi-byte value on the wire.
var order = binary.BigEndian

// Integer is the set of fixed-width integer types. Platform-sized int, uint
// and uintptr are excluded so that the wire width never depends on GOARCH.
type Integer interface {
	constraints.Integer
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Int is the big-endian codec for one fixed-width integer type.
type Int[T Integer] struct{}

var (
	U8  Int[uint8]
	U16 Int[uint16]
	U32 Int[uint32]
	U64 Int[uint64]
	I8  Int[int8]
	I16 Int[int16]
	I32 Int[int32]
	I64 Int[int64]
)

var _ Sized[uint32] = Int[uint32]{}

func (Int[T]) Width() int {
	var v T
	return int(unsafe.Sizeof(v))
}

func (c Int[T]) MinSize() int { return c.Width() }

func (c Int[T]) Probe(src []byte) ProbeResult { return probeWidth(src, c.Width()) }

// Append never fails.
func (c Int[T]) Append(dst []byte, v T) ([]byte, error) {
	u := uint64(v)
	switch c.Width() {
	case 1:
		return append(dst, byte(u)), nil
	case 2:
		return order.AppendUint16(dst, uint16(u)), nil
	case 4:
		return order.AppendUint32(dst, uint32(u)), nil
	default:
		return order.AppendUint64(dst, u), nil
	}
}

func (c Int[T]) Decode(src []byte) (T, []byte, error) {
	width := c.Width()
	if len(src) < width {
		return 0, src, ErrTruncatedData
	}
	var u uint64
	switch width {
	case 1:
		u = uint64(src[0])
	case 2:
		u = uint64(order.Uint16(src))
	case 4:
		u = uint64(order.Uint32(src))
	default:
		u = order.Uint64(src)
	}
	// Narrowing conversion keeps the low bits, which restores the sign of signed types.
	return T(u), src[width:], nil
}

// Uint128 is an unsigned 128-bit integer split into two 64-bit halves.
type Uint128 struct {
	Hi, Lo uint64
}

// Int128 is a two's complement signed 128-bit integer; the sign lives in Hi.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Int128From sign-extends a 64-bit value.
func Int128From(v int64) Int128 {
	return Int128{Hi: v >> 63, Lo: uint64(v)}
}

type (
	uint128Codec struct{}
	int128Codec  struct{}
)

var (
	U128 Sized[Uint128] = uint128Codec{}
	I128 Sized[Int128]  = int128Codec{}
)

const width128 = 16

func (uint128Codec) Width() int                   { return width128 }
func (uint128Codec) MinSize() int                 { return width128 }
func (uint128Codec) Probe(src []byte) ProbeResult { return probeWidth(src, width128) }

func (uint128Codec) Append(dst []byte, v Uint128) ([]byte, error) {
	dst = order.AppendUint64(dst, v.Hi)
	return order.AppendUint64(dst, v.Lo), nil
}

func (uint128Codec) Decode(src []byte) (Uint128, []byte, error) {
	if len(src) < width128 {
		return Uint128{}, src, ErrTruncatedData
	}
	return Uint128{Hi: order.Uint64(src), Lo: order.Uint64(src[8:])}, src[width128:], nil
}

func (int128Codec) Width() int                   { return width128 }
func (int128Codec) MinSize() int                 { return width128 }
func (int128Codec) Probe(src []byte) ProbeResult { return probeWidth(src, width128) }

func (int128Codec) Append(dst []byte, v Int128) ([]byte, error) {
	dst = order.AppendUint64(dst, uint64(v.Hi))
	return order.AppendUint64(dst, v.Lo), nil
}

func (int128Codec) Decode(src []byte) (Int128, []byte, error) {
	if len(src) < width128 {
		return Int128{}, src, ErrTruncatedData
	}
	return Int128{Hi: int64(order.Uint64(src)), Lo: order.Uint64(src[8:])}, src[width128:], nil
}
