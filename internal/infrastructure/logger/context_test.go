package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContextIdentity(t *testing.T) {
	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithUserID(ctx, "user-1")
	ctx = WithDeviceID(ctx, "device-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.Equal(t, "device-1", GetDeviceID(ctx))
}

func TestContextIdentityEmpty(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetDeviceID(ctx))
}

func TestWithContextRoundtrip(t *testing.T) {
	log, logs := observedLogger()

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("attached")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "attached", logs.All()[0].Message)
}

func TestFromContextDefault(t *testing.T) {
	// no logger attached: must still be safe to log through
	FromContext(context.Background()).Info("dropped")
}

func TestLEnrichesFromContext(t *testing.T) {
	log, logs := observedLogger()

	ctx := WithContext(context.Background(), log)
	ctx = WithRequestID(ctx, "req-9")
	ctx = WithUserID(ctx, "user-9")
	ctx = WithDeviceID(ctx, "device-9")

	L(ctx).Info("quest joined", zap.String("quest_id", "q-1"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-9", fields["request_id"])
	assert.Equal(t, "user-9", fields["user_id"])
	assert.Equal(t, "device-9", fields["device_id"])
	assert.Equal(t, "q-1", fields["quest_id"])
}

func TestLWithoutIdentity(t *testing.T) {
	log, logs := observedLogger()

	L(WithContext(context.Background(), log)).Warn("degraded")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "request_id")
	assert.NotContains(t, fields, "user_id")
}

func TestWithLoggerUsesExplicitLogger(t *testing.T) {
	attached, attachedLogs := observedLogger()
	explicit, explicitLogs := observedLogger()

	ctx := WithContext(context.Background(), attached)
	ctx = WithRequestID(ctx, "req-3")

	WithLogger(ctx, explicit).Error("upstream unavailable")

	assert.Equal(t, 0, attachedLogs.Len())
	require.Equal(t, 1, explicitLogs.Len())
	assert.Equal(t, "req-3", explicitLogs.All()[0].ContextMap()["request_id"])
}

func TestContextLoggerWith(t *testing.T) {
	log, logs := observedLogger()

	cl := WithLogger(context.Background(), log).With(zap.String("component", "chat"))
	cl.Debug("watermark advanced")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "chat", logs.All()[0].ContextMap()["component"])
}
