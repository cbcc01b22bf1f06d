package wire

import "github.com/rs/zerolog"

// Observer receives the outcome of every Send and Recv on a Conn.
// n is the encoded size of the message for SendOK and RecvMessage, else 0.
type Observer interface {
	ObserveSend(status SendStatus, n int)
	ObserveRecv(status RecvStatus, n int)
}

type nopObserver struct{}

func (nopObserver) ObserveSend(SendStatus, int) {}
func (nopObserver) ObserveRecv(RecvStatus, int) {}

const defaultBufferSize = 256

type options struct {
	logger     zerolog.Logger
	observer   Observer
	bufferSize int
}

// Option configures a Conn.
type Option func(*options)

// WithLogger sets the logger used for connection state transitions.
// The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver reports every Send and Recv outcome to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithBufferSize sets the initial capacity of the receive buffer.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

func defaultOptions() options {
	return options{
		logger:     zerolog.Nop(),
		observer:   nopObserver{},
		bufferSize: defaultBufferSize,
	}
}
