package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/pkg/logger"
)

func TestCollector_DrainResets(t *testing.T) {
	ctx, c := WithCollector(context.Background())
	require.Same(t, c, FromContext(ctx))

	c.Notify(ctx, domain.Info("Success", "Task added successfully"))
	c.Notify(ctx, domain.Failure("Task title is required"))

	got := c.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "Success", got[0].Title)
	assert.Equal(t, domain.SeverityError, got[1].Severity)
	assert.Empty(t, c.Drain())
}

func TestFromContext_Missing(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
}

func TestLogger_LevelsBySeverity(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewLogger(zap.New(core))

	ctx := logger.ContextWithRequestID(context.Background(), "req-1")
	sink.Notify(ctx, domain.Info("Success", "Task updated successfully"))
	sink.Notify(ctx, domain.Failure("Failed to sign out"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "notify", entries[0].LoggerName)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "Failed to sign out", entries[1].ContextMap()["description"])
}

type counter struct{ n int }

func (c *counter) Notify(context.Context, domain.Notification) { c.n++ }

func TestFanout_ReachesSinksAndCollector(t *testing.T) {
	first, second := &counter{}, &counter{}
	fan := NewFanout(first, nil, second)

	ctx, c := WithCollector(context.Background())
	fan.Notify(ctx, domain.Info("Success", "Task deleted successfully"))
	fan.Notify(context.Background(), domain.Info("Success", "outside a request"))

	assert.Equal(t, 2, first.n)
	assert.Equal(t, 2, second.n)
	assert.Len(t, c.Drain(), 1)
}
