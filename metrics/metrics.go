// Package metrics exports Conn send and receive outcomes as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/oy3o/wire"
)

// MetricsConfig configures the collector.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "wire").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the collector.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "wire",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector implements wire.Observer.
//
// Metrics collected:
//   - wire_sends_total{status}: Send outcomes
//   - wire_receives_total{status}: Recv outcomes, including not_ready polls
//   - wire_sent_bytes_total: encoded bytes handed to streams
//   - wire_received_bytes_total: bytes of decoded messages
type Collector struct {
	sends         *prometheus.CounterVec
	receives      *prometheus.CounterVec
	sentBytes     prometheus.Counter
	receivedBytes prometheus.Counter
}

var _ wire.Observer = (*Collector)(nil)

// New registers the collector's metrics and returns it.
// One Collector can be shared by any number of connections.
func New(opts ...MetricsOption) *Collector {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		sends: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sends_total",
			Help:        "Total number of Send calls by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		receives: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "receives_total",
			Help:        "Total number of Recv calls by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		sentBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sent_bytes_total",
			Help:        "Total number of encoded message bytes written",
			ConstLabels: config.ConstLabels,
		}),

		receivedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "received_bytes_total",
			Help:        "Total number of decoded message bytes",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (c *Collector) ObserveSend(status wire.SendStatus, n int) {
	c.sends.WithLabelValues(status.String()).Inc()
	if n > 0 {
		c.sentBytes.Add(float64(n))
	}
}

func (c *Collector) ObserveRecv(status wire.RecvStatus, n int) {
	c.receives.WithLabelValues(status.String()).Inc()
	if n > 0 {
		c.receivedBytes.Add(float64(n))
	}
}
