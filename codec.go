package wire

import "fmt"

// Codec is the contract every wire type implements: fixed-width integers,
// length-prefixed sequences, fixed-layout structs and whole unions.
//
// Implementations must be stateless with respect to the bytes they inspect:
// Probe never mutates src and returns the same result for the same input.
type Codec[T any] interface {
	// Append encodes v and appends it to dst, returning the extended slice.
	// On error the returned slice must be discarded.
	Append(dst []byte, v T) ([]byte, error)

	// Decode reads one value from the head of src and returns the remaining tail.
	Decode(src []byte) (T, []byte, error)

	// MinSize is the smallest number of bytes that could start a valid value.
	MinSize() int

	// Probe reports whether src starts with one complete encoded value,
	// how many more bytes are needed, or that it can never be valid.
	Probe(src []byte) ProbeResult
}

// Sized is a Codec whose encoded size never depends on the value.
// Only Sized codecs can be sequence elements.
type Sized[T any] interface {
	Codec[T]
	// Width returns the exact encoded size in bytes.
	Width() int
}

// ProbeState classifies the result of probing a byte prefix.
type ProbeState uint8

const (
	// StateInvalid means no amount of additional bytes can make the prefix valid.
	StateInvalid ProbeState = iota
	// StateIncomplete means at least N more bytes must be appended before probing again.
	StateIncomplete
	// StateComplete means the first N bytes form one fully valid encoded value.
	StateComplete
)

func (s ProbeState) String() string {
	switch s {
	case StateInvalid:
		return "invalid"
	case StateIncomplete:
		return "incomplete"
	case StateComplete:
		return "complete"
	}
	return fmt.Sprintf("ProbeState(%d)", uint8(s))
}

// ProbeResult is the outcome of Codec.Probe.
// N is the consumed length for StateComplete and the shortfall for StateIncomplete.
type ProbeResult struct {
	State ProbeState
	N     int
}

// Complete reports that the first n bytes hold one encoded value.
func Complete(n int) ProbeResult { return ProbeResult{State: StateComplete, N: n} }

// Incomplete reports a shortfall of k bytes. k must be positive.
func Incomplete(k int) ProbeResult { return ProbeResult{State: StateIncomplete, N: k} }

// Invalid reports a desynchronized or malformed prefix.
func Invalid() ProbeResult { return ProbeResult{State: StateInvalid} }

func (r ProbeResult) IsComplete() bool   { return r.State == StateComplete }
func (r ProbeResult) IsIncomplete() bool { return r.State == StateIncomplete }
func (r ProbeResult) IsInvalid() bool    { return r.State == StateInvalid }

func (r ProbeResult) String() string {
	if r.State == StateInvalid {
		return r.State.String()
	}
	return fmt.Sprintf("%s(%d)", r.State, r.N)
}

// probeWidth is the trivial probe shared by every fixed-width codec.
func probeWidth(src []byte, width int) ProbeResult {
	if len(src) < width {
		return Incomplete(width - len(src))
	}
	return Complete(width)
}
