package wire

import "errors"

var (
	// ErrTruncatedData indicates that fewer bytes were available than the value requires.
	ErrTruncatedData = errors.New("wire: truncated data")

	// ErrTrailingData is returned by Unmarshal when bytes remain after the decoded value.
	ErrTrailingData = errors.New("wire: trailing data after decoded value")

	// ErrSequenceTooLong indicates a sequence whose payload exceeds the 16-bit length prefix.
	ErrSequenceTooLong = errors.New("wire: sequence exceeds 65535 payload bytes")

	// ErrMisalignedSequence indicates a declared sequence length that is not a
	// multiple of the element width.
	ErrMisalignedSequence = errors.New("wire: sequence length is not a multiple of element width")

	// ErrVariableSize indicates a Struct type that contains variable-size fields.
	ErrVariableSize = errors.New("wire: type has no fixed binary size")

	// ErrUnknownDiscriminant indicates a tag byte that matches no variant of the union.
	ErrUnknownDiscriminant = errors.New("wire: unknown discriminant")

	// ErrUnknownVariant indicates an attempt to encode a value whose type is not in the union.
	ErrUnknownVariant = errors.New("wire: value is not a variant of this union")

	// ErrIncompleteMessage indicates a decode attempted on bytes that probe as incomplete.
	ErrIncompleteMessage = errors.New("wire: incomplete message")

	// ErrInvalidMessage indicates bytes that can never form a valid message.
	ErrInvalidMessage = errors.New("wire: invalid message")

	// ErrEmptySchema indicates a union declared without variants.
	ErrEmptySchema = errors.New("wire: union has no variants")

	// ErrTooManyVariants indicates a union with more variants than a single tag byte can address.
	ErrTooManyVariants = errors.New("wire: union has more than 256 variants")

	// ErrDuplicateVariant indicates two variants sharing a name or a Go type.
	ErrDuplicateVariant = errors.New("wire: duplicate variant")

	// ErrVariantType indicates a variant type that does not implement the union's message type.
	ErrVariantType = errors.New("wire: variant type does not implement message type")

	// ErrWouldBlock is the control signal a non-blocking Stream returns when no data is available.
	ErrWouldBlock = errors.New("wire: operation would block")

	// ErrDisconnected wraps the cause of a terminal I/O failure on a Conn.
	ErrDisconnected = errors.New("wire: disconnected")

	// ErrInvalidRead indicates that a Stream returned an invalid (negative or outbound) count from Read.
	ErrInvalidRead = errors.New("wire: stream returned invalid count from Read")

	// ErrNilIO indicates that a constructor was called with a nil stream, reader or writer.
	ErrNilIO = errors.New("wire: nil io.Reader/io.Writer")
)
