package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "tilepath", cfg.ServiceName)
	require.Equal(t, "none", cfg.TraceExporter)
	require.Equal(t, "none", cfg.MetricExporter)
}

func TestInit_NilContext(t *testing.T) {
	//nolint:staticcheck // nil context on purpose
	_, err := Init(nil, DefaultConfig())
	require.ErrorIs(t, err, ErrNilContext)
}

func TestInit_Noop(t *testing.T) {
	shutdown, err := Init(context.Background(), DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

func TestInit_UnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "zipkin"
	_, err := Init(context.Background(), cfg)
	require.ErrorIs(t, err, ErrUnknownExporter)

	cfg = DefaultConfig()
	cfg.MetricExporter = "prometheus"
	_, err = Init(context.Background(), cfg)
	require.ErrorIs(t, err, ErrUnknownExporter)
}

// TestInit_Stdout exports one span and one counter into a buffer.
func TestInit_Stdout(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.TraceExporter = "stdout"
	cfg.MetricExporter = "stdout"
	cfg.Writer = &buf

	ctx := context.Background()
	shutdown, err := Init(ctx, cfg)
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry-test").Start(ctx, "probe-span")
	span.End()
	counter, err := otel.Meter("telemetry-test").Int64Counter("probe_total")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	require.NoError(t, shutdown(ctx))
	out := buf.String()
	require.True(t, strings.Contains(out, "probe-span"), out)
	require.True(t, strings.Contains(out, "probe_total"), out)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(slog.LevelWarn, "json", &buf)
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown", slog.String("k", "v"))
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"k":"v"`)

	buf.Reset()
	l, err = NewLogger(slog.LevelDebug, "text", &buf)
	require.NoError(t, err)
	l.Debug("plain")
	require.Contains(t, buf.String(), "msg=plain")

	_, err = NewLogger(slog.LevelInfo, "xml", &buf)
	require.ErrorIs(t, err, ErrUnknownFormat)
}
