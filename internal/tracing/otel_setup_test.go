package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestNewResource_CarriesServiceAndEnvironment(t *testing.T) {
	res, err := newResource(context.Background(), "account-service", "staging")
	require.NoError(t, err)

	value, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	require.Equal(t, "account-service", value.AsString())

	value, ok = res.Set().Value(semconv.DeploymentEnvironmentKey)
	require.True(t, ok)
	require.Equal(t, "staging", value.AsString())
}

func TestInitTracerProvider_ShutdownWithoutCollector(t *testing.T) {
	shutdown, err := InitTracerProvider("account-service", "development", "127.0.0.1:4317")
	require.NoError(t, err)

	// Nothing was exported, so shutdown has nothing to flush.
	require.NoError(t, shutdown(context.Background()))
}
