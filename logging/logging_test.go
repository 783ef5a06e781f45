package logging

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestConfigure(t *testing.T) {
	defer func() {
		require.NoError(t, Configure("info", ""))
	}()

	require.NoError(t, Configure("debug", "json"))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)
	assert.True(t, log.StandardLogger().ReportCaller)

	require.NoError(t, Configure("warn", "text"))
	assert.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)
	assert.False(t, log.StandardLogger().ReportCaller)

	require.Error(t, Configure("loud", ""))
}

func TestContextHook(t *testing.T) {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01, 0x02},
		SpanID:  trace.SpanID{0x03},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	entry := log.WithContext(ctx)
	require.NoError(t, (&contextHook{}).Fire(entry))
	assert.Equal(t, sc.TraceID().String(), entry.Data["trace_id"])
	assert.Equal(t, sc.SpanID().String(), entry.Data["span_id"])

	plain := log.WithField("a", 1)
	require.NoError(t, (&contextHook{}).Fire(plain))
	assert.NotContains(t, plain.Data, "trace_id")
}

func TestRedactHook(t *testing.T) {
	entry := log.WithFields(log.Fields{
		"preimage": "deadbeef",
		"bolt11":   "lnbcrt1",
	})
	require.NoError(t, (&redactHook{fields: secretFields}).Fire(entry))
	assert.Equal(t, redacted, entry.Data["preimage"])
	assert.Equal(t, "lnbcrt1", entry.Data["bolt11"])
}
