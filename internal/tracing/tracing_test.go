package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	_, span := p.Tracer("test").Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid(), "disabled tracing should produce no-op spans")
	span.End()

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetupEnabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{
		Enabled:     true,
		ServiceName: "issuedesk-test",
		ZipkinURL:   "http://127.0.0.1:9/api/v2/spans",
	})
	require.NoError(t, err)

	_, span := p.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Export fails against the closed port; shutdown must still return.
	_ = p.Shutdown(ctx)
}
