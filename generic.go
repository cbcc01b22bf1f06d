package wire

import "fmt"

// Marshal encodes v into a newly allocated slice.
func Marshal[T any](c Codec[T], v T) ([]byte, error) {
	return c.Append(make([]byte, 0, c.MinSize()), v)
}

// Unmarshal decodes exactly one value from data. Any byte left over after
// the value is reported as ErrTrailingData, since it usually means the
// caller and the peer disagree about the schema.
func Unmarshal[T any](c Codec[T], data []byte) (T, error) {
	v, rest, err := c.Decode(data)
	if err != nil {
		return v, err
	}
	if len(rest) > 0 {
		return v, fmt.Errorf("%w: %d bytes", ErrTrailingData, len(rest))
	}
	return v, nil
}

// Size returns the encoded size of v.
// Fixed-width codecs answer without encoding.
func Size[T any](c Codec[T], v T) (int, error) {
	if s, ok := c.(Sized[T]); ok {
		return s.Width(), nil
	}
	bp := getEncodeBuf()
	defer putEncodeBuf(bp)
	out, err := c.Append(*bp, v)
	if err != nil {
		return 0, err
	}
	*bp = out
	return len(out), nil
}
