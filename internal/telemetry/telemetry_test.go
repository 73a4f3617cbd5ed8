package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mcoot/codechallenge-go/internal/telemetry"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	tp, shutdown, err := telemetry.Setup(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, noop.TracerProvider{}, tp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, shutdown(ctx))
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so nothing is exported
	tp, shutdown, err := telemetry.Setup(context.Background(), "http://192.0.2.1:4318")
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "span")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Shutdown with a cancelled context returns promptly, with or without an error
	_ = shutdown(ctx)
}
