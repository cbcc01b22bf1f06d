package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/wire"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	require.NotNil(t, m.Counter, "expected counter metric to have Counter field")
	return m.GetCounter().GetValue()
}

type ping struct{}

func (*ping) isMsg() {}

type note struct{ Code uint16 }

func (*note) isMsg() {}

type msg interface{ isMsg() }

var schema = wire.MustUnion[msg](
	wire.Case[msg, ping]("Ping"),
	wire.Case[msg]("Note", wire.Bind(wire.U16, func(n *note) *uint16 { return &n.Code })),
)

func TestCollectorObservesConn(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(WithRegistry(reg), WithSubsystem("test"))

	stream := wire.NewMemStream()
	conn := schema.NewConn(stream, wire.WithObserver(c))

	require.Equal(t, wire.SendOK, conn.Send(&note{Code: 7}))
	require.Equal(t, wire.SendOK, conn.Send(&ping{}))

	_, status := conn.Recv()
	require.Equal(t, wire.RecvNotReady, status)

	stream.Feed(stream.Written())
	_, status = conn.Recv()
	require.Equal(t, wire.RecvMessage, status)
	_, status = conn.Recv()
	require.Equal(t, wire.RecvMessage, status)

	stream.Feed([]byte{9})
	_, status = conn.Recv()
	require.Equal(t, wire.RecvInvalid, status)

	assert.Equal(t, 2.0, counterValue(t, c.sends.WithLabelValues("ok")))
	assert.Equal(t, 4.0, counterValue(t, c.sentBytes))
	assert.Equal(t, 2.0, counterValue(t, c.receives.WithLabelValues("message")))
	assert.Equal(t, 1.0, counterValue(t, c.receives.WithLabelValues("not_ready")))
	assert.Equal(t, 1.0, counterValue(t, c.receives.WithLabelValues("invalid")))
	assert.Equal(t, 4.0, counterValue(t, c.receivedBytes))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "wire_test_sends_total")
	assert.Contains(t, names, "wire_test_received_bytes_total")
}

func TestCollectorOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(
		WithRegistry(reg),
		WithNamespace("game"),
		WithConstLabels(prometheus.Labels{"peer": "server"}),
	)
	c.ObserveSend(wire.SendDisconnected, 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]*dto.MetricFamily{}
	for _, f := range families {
		byName[f.GetName()] = f
	}
	// Vectors only export observed label values.
	assert.NotContains(t, byName, "game_receives_total")
	require.Contains(t, byName, "game_sent_bytes_total")

	f := byName["game_sends_total"]
	require.NotNil(t, f)
	require.Len(t, f.GetMetric(), 1)
	labels := map[string]string{}
	for _, lp := range f.GetMetric()[0].GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	assert.Equal(t, map[string]string{"peer": "server", "status": "disconnected"}, labels)
	assert.Zero(t, counterValue(t, c.sentBytes))
}
