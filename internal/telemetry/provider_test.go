package telemetry

import (
	"context"
	"testing"

	"playcoach/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
}

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	restoreGlobals(t)
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Endpoint: "  "})
	require.NoError(t, err)
	assert.Equal(t, before, otel.GetTracerProvider())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, shutdown(ctx))
}

func TestSetupRegistersProvider(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		// Non-routable addresses so no export happens.
		{name: "url", endpoint: "http://192.0.2.1:4318"},
		{name: "host port", endpoint: "192.0.2.1:4318"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreGlobals(t)

			shutdown, err := Setup(context.Background(), config.TelemetryConfig{Endpoint: tt.endpoint})
			require.NoError(t, err)

			_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
			assert.True(t, isSDK)
			assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}
