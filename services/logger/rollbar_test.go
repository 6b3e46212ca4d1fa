package logsvc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Axelresells/AxelScale-Formacion/core/user"
	testutil "github.com/Axelresells/AxelScale-Formacion/tests"
)

func TestRollbarLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewRollbarLogger(zap.New(core), testutil.NewConfig())
	logger.Enable(false)

	usr := user.User{ID: "u-1", Email: "axel@test.es"}
	logger.Error("boom", errors.New("db down"), usr, map[string]interface{}{"path": "/app"})
	logger.Info("started", "v1.0")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "boom", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "db down", ctx["error"])
	assert.Equal(t, "u-1", ctx["user_id"])
	assert.Equal(t, "/app", ctx["path"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "v1.0", entries[1].ContextMap()["arg0"])
}
