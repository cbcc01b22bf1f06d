package wire

import (
	"fmt"
	"math"
)

// Field binds a codec to one field of a variant struct. V is the variant's
// pointer type. Fields are created with Bind.
type Field[V any] interface {
	minSize() int
	probe(src []byte) ProbeResult
	appendField(dst []byte, v V) ([]byte, error)
	decodeField(src []byte, v V) ([]byte, error)
}

type boundField[V, T any] struct {
	codec Codec[T]
	ref   func(V) *T
}

// Bind returns a Field that encodes the value ref points at with c.
//
//	wire.Bind(wire.U32, func(s *See) *uint32 { return &s.X })
func Bind[V, T any](c Codec[T], ref func(V) *T) Field[V] {
	return boundField[V, T]{codec: c, ref: ref}
}

func (f boundField[V, T]) minSize() int                 { return f.codec.MinSize() }
func (f boundField[V, T]) probe(src []byte) ProbeResult { return f.codec.Probe(src) }

func (f boundField[V, T]) appendField(dst []byte, v V) ([]byte, error) {
	return f.codec.Append(dst, *f.ref(v))
}

func (f boundField[V, T]) decodeField(src []byte, v V) ([]byte, error) {
	val, rest, err := f.codec.Decode(src)
	if err != nil {
		return src, err
	}
	*f.ref(v) = val
	return rest, nil
}

// Variant is one declared case of a Union over the message type M.
// Variants are created with Case.
type Variant[M any] interface {
	// Name is the declared variant name.
	Name() string

	check() error
	matches(m M) bool
	sample() M
	minSize() int
	probe(src []byte) ProbeResult
	appendTo(dst []byte, m M) ([]byte, error)
	decode(src []byte) (M, []byte, error)
}

// variantCase represents a variant as a *S whose fields are encoded in declaration order.
type variantCase[M, S any] struct {
	name   string
	fields []Field[*S]
	min    int
}

// Case declares a variant named name whose Go value is a *S implementing M.
// S is inferred from the fields; variants without fields spell it out:
//
//	wire.Case[Event, Ping]("Ping")
func Case[M, S any](name string, fields ...Field[*S]) Variant[M] {
	c := &variantCase[M, S]{name: name, fields: fields}
	for _, f := range fields {
		c.min += f.minSize()
	}
	return c
}

func (c *variantCase[M, S]) Name() string { return c.name }
func (c *variantCase[M, S]) minSize() int { return c.min }

func (c *variantCase[M, S]) check() error {
	if _, ok := any(new(S)).(M); !ok {
		return fmt.Errorf("%w: variant %q (%T)", ErrVariantType, c.name, new(S))
	}
	return nil
}

func (c *variantCase[M, S]) matches(m M) bool {
	_, ok := any(m).(*S)
	return ok
}

func (c *variantCase[M, S]) sample() M {
	m, _ := any(new(S)).(M)
	return m
}

// probe walks the field list over src (which excludes the tag), keeping a
// running estimate of the bytes still missing from the minimum encoding.
func (c *variantCase[M, S]) probe(src []byte) ProbeResult {
	missing := c.min
	consumed := 0
	for _, f := range c.fields {
		need := f.minSize()
		if need > len(src) {
			return Incomplete(missing - len(src))
		}
		missing -= need
		r := f.probe(src)
		switch r.State {
		case StateComplete:
			consumed += r.N
			src = src[r.N:]
		case StateIncomplete:
			return Incomplete(missing + r.N)
		default:
			return Invalid()
		}
	}
	return Complete(consumed)
}

func (c *variantCase[M, S]) appendTo(dst []byte, m M) ([]byte, error) {
	v, _ := any(m).(*S)
	if v == nil {
		return dst, fmt.Errorf("%w: nil %s", ErrUnknownVariant, c.name)
	}
	var err error
	for _, f := range c.fields {
		if dst, err = f.appendField(dst, v); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

func (c *variantCase[M, S]) decode(src []byte) (M, []byte, error) {
	v := new(S)
	var err error
	for _, f := range c.fields {
		if src, err = f.decodeField(src, v); err != nil {
			var zero M
			return zero, src, err
		}
	}
	return any(v).(M), src, nil
}

// Union is a tagged-union codec: one discriminant byte followed by the
// fields of the selected variant. Discriminants are assigned 0-based in
// declaration order and the table is immutable once built.
//
// A Union is itself a Codec, so unions nest as fields of other variants.
type Union[M any] struct {
	variants []Variant[M]
	min      int
}

var _ Codec[any] = (*Union[any])(nil)

// NewUnion builds the discriminant table for variants.
func NewUnion[M any](variants ...Variant[M]) (*Union[M], error) {
	if len(variants) == 0 {
		return nil, ErrEmptySchema
	}
	if len(variants) > math.MaxUint8+1 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyVariants, len(variants))
	}

	u := &Union[M]{variants: make([]Variant[M], len(variants)), min: math.MaxInt}
	names := make(map[string]struct{}, len(variants))
	for i, v := range variants {
		if err := v.check(); err != nil {
			return nil, err
		}
		if _, dup := names[v.Name()]; dup {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicateVariant, v.Name())
		}
		names[v.Name()] = struct{}{}
		for _, prev := range u.variants[:i] {
			if prev.matches(v.sample()) {
				return nil, fmt.Errorf("%w: %q and %q share a type", ErrDuplicateVariant, prev.Name(), v.Name())
			}
		}
		u.variants[i] = v
		u.min = min(u.min, 1+v.minSize())
	}
	return u, nil
}

// MustUnion is like NewUnion but panics on an invalid schema.
func MustUnion[M any](variants ...Variant[M]) *Union[M] {
	u, err := NewUnion(variants...)
	if err != nil {
		panic(err)
	}
	return u
}

// Len returns the number of variants.
func (u *Union[M]) Len() int { return len(u.variants) }

// Name returns the variant name for tag, or "" when the tag is unassigned.
func (u *Union[M]) Name(tag uint8) string {
	if int(tag) >= len(u.variants) {
		return ""
	}
	return u.variants[tag].Name()
}

// Tag returns the discriminant of m's variant.
func (u *Union[M]) Tag(m M) (uint8, bool) {
	for i, v := range u.variants {
		if v.matches(m) {
			return uint8(i), true
		}
	}
	return 0, false
}

// MinSize is the size of the shortest variant encoding, tag included.
func (u *Union[M]) MinSize() int { return u.min }

func (u *Union[M]) Append(dst []byte, m M) ([]byte, error) {
	tag, ok := u.Tag(m)
	if !ok {
		return dst, fmt.Errorf("%w: %T", ErrUnknownVariant, m)
	}
	return u.variants[tag].appendTo(append(dst, tag), m)
}

func (u *Union[M]) Probe(src []byte) ProbeResult {
	if len(src) < 1 {
		return Incomplete(1)
	}
	if int(src[0]) >= len(u.variants) {
		return Invalid()
	}
	r := u.variants[src[0]].probe(src[1:])
	if r.IsComplete() {
		r.N++
	}
	return r
}

func (u *Union[M]) Decode(src []byte) (M, []byte, error) {
	var zero M
	switch r := u.Probe(src); r.State {
	case StateComplete:
	case StateIncomplete:
		return zero, src, fmt.Errorf("%w: %d more bytes required", ErrIncompleteMessage, r.N)
	default:
		if int(src[0]) >= len(u.variants) {
			return zero, src, fmt.Errorf("%w: %d", ErrUnknownDiscriminant, src[0])
		}
		return zero, src, ErrInvalidMessage
	}

	tag := src[0]
	if int(tag) >= len(u.variants) {
		return zero, src, fmt.Errorf("%w: %d", ErrUnknownDiscriminant, tag)
	}
	m, rest, err := u.variants[tag].decode(src[1:])
	if err != nil {
		return zero, src, err
	}
	return m, rest, nil
}

// NewConn returns a Conn that exchanges messages of this union over s.
func (u *Union[M]) NewConn(s Stream, opts ...Option) *Conn[M] {
	return NewConn[M](s, u, opts...)
}
