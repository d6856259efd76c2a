package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "sns-test", Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewSpan_SetErrorAndEnd(t *testing.T) {
	span, ctx := NewSpan(context.Background(), "unit", attribute.String("k", "v"))
	require.NotNil(t, span)
	require.NotNil(t, ctx)

	span.SetError(errors.New("boom"))
	span.SetError(nil)
	span.End()
}

func TestTrackQuery(t *testing.T) {
	done := TrackQuery("select", "posts")
	assert.NotPanics(t, done)
}
